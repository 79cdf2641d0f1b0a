package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	authDomain "github.com/allisson/modelgate/internal/auth/domain"
	"github.com/allisson/modelgate/internal/auth/http/dto"
	authUseCase "github.com/allisson/modelgate/internal/auth/usecase"
)

// RunCreateUser creates a user account with a role, applying the same rules as
// POST /signup. When password is empty it is read from io.Reader.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase authUseCase.UserUseCase,
	logger *slog.Logger,
	username string,
	password string,
	role string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new user", slog.String("username", username), slog.String("role", role))

	if password == "" {
		var err error
		password, err = promptForPassword(io)
		if err != nil {
			return err
		}
	}

	req := dto.SignupRequest{Username: username, Password: password, Role: role}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}

	user, err := userUseCase.Signup(ctx, req.ToInput())
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		if err := writeJSON(dto.MapUserToResponse(user), io.Writer); err != nil {
			return err
		}
	} else {
		outputUserText(user, io.Writer)
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)

	return nil
}

func promptForPassword(io IOTuple) (string, error) {
	_, _ = fmt.Fprint(io.Writer, "Enter password: ")

	line, err := bufio.NewReader(io.Reader).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}

func outputUserText(user *authDomain.User, writer io.Writer) {
	caps := make([]string, 0, len(user.Capabilities))
	for _, c := range user.Capabilities {
		caps = append(caps, string(c))
	}

	_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
	_, _ = fmt.Fprintf(writer, "User ID: %s\n", user.ID.String())
	_, _ = fmt.Fprintf(writer, "Username: %s\n", user.Username)
	_, _ = fmt.Fprintf(writer, "Role: %s\n", user.Role)
	_, _ = fmt.Fprintf(writer, "Capabilities: %s\n", strings.Join(caps, ", "))
}
