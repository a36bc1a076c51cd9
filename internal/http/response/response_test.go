package response_test

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravshanbekov/auth-gateway/internal/http/response"
)

func TestOK(t *testing.T) {
	resp := response.OK()

	assert.Equal(t, response.StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Nil(t, resp.Data)
}

func TestStatusOKWithData(t *testing.T) {
	resp := response.StatusOKWithData(map[string]any{"token": "abc"})

	assert.Equal(t, response.StatusOK, resp.Status)
	assert.Equal(t, map[string]any{"token": "abc"}, resp.Data)
}

func TestError(t *testing.T) {
	resp := response.Error("invalid credentials")

	assert.Equal(t, response.StatusError, resp.Status)
	assert.Equal(t, "invalid credentials", resp.Error)
}

func TestValidationError(t *testing.T) {
	type request struct {
		PhoneNumber string `validate:"required,max=20"`
		Password    string `validate:"required,min=6"`
		Role        string `validate:"omitempty,oneof=user admin superuser"`
	}

	tests := []struct {
		name    string
		request request
		want    string
	}{
		{
			name:    "missing required fields",
			request: request{},
			want:    "field PhoneNumber is a required field, field Password is a required field",
		},
		{
			name:    "too short password",
			request: request{PhoneNumber: "+79991234567", Password: "short"},
			want:    "field Password is too short",
		},
		{
			name:    "unknown role",
			request: request{PhoneNumber: "+79991234567", Password: "password", Role: "root"},
			want:    "field Role must be one of the allowed values",
		},
	}

	validate := validator.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.request)
			require.Error(t, err)

			resp := response.ValidationError(err.(validator.ValidationErrors))
			assert.Equal(t, response.StatusError, resp.Status)
			assert.Equal(t, tt.want, resp.Error)
		})
	}
}
