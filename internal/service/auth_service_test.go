package service

import (
	"testing"

	"go-group-chat/internal/repository"
)

func TestAuthService_Register(t *testing.T) {
	setupServiceTest(t)
	userRepo := repository.NewUserRepository()
	service := NewAuthService(userRepo)

	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{
			name: "Valid registration",
			req: RegisterRequest{
				Username: "testuser",
				Password: "password123",
				Email:    "test@example.com",
			},
			wantErr: false,
		},
		{
			name: "Duplicate username",
			req: RegisterRequest{
				Username: "testuser",
				Password: "password123",
				Email:    "another@example.com",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.Register(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if user == nil || user.ID == 0 {
					t.Error("Register() should return a persisted user")
					return
				}
				if user.Password == tt.req.Password {
					t.Error("Register() must not store the plaintext password")
				}
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	setupServiceTest(t)
	userRepo := repository.NewUserRepository()
	service := NewAuthService(userRepo)

	_, err := service.Register(RegisterRequest{
		Username: "loginuser",
		Password: "password123",
		Email:    "login@example.com",
	})
	if err != nil {
		t.Fatalf("Failed to register test user: %v", err)
	}

	tests := []struct {
		name    string
		req     LoginRequest
		wantErr bool
	}{
		{
			name:    "Valid credentials",
			req:     LoginRequest{Username: "loginuser", Password: "password123"},
			wantErr: false,
		},
		{
			name:    "Wrong password",
			req:     LoginRequest{Username: "loginuser", Password: "wrongpass"},
			wantErr: true,
		},
		{
			name:    "Unknown user",
			req:     LoginRequest{Username: "ghost", Password: "password123"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, user, err := service.Login(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Login() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if token == "" {
					t.Error("Login() should return a token")
				}
				if user == nil || user.Username != tt.req.Username {
					t.Error("Login() should return the authenticated user")
				}
			}
		})
	}
}
