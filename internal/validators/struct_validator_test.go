package validators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-keeper/models"
)

func TestStructValidator_RegisterUserRequest(t *testing.T) {
	v := NewStructValidator()
	ctx := context.Background()

	valid := models.RegisterUserRequest{
		Email:     "ada@example.com",
		Password:  "password123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}

	tests := []struct {
		name       string
		mutate     func(r *models.RegisterUserRequest)
		wantFields []string
	}{
		{name: "valid", mutate: func(*models.RegisterUserRequest) {}},
		{name: "bad email", mutate: func(r *models.RegisterUserRequest) { r.Email = "not-an-email" }, wantFields: []string{"email"}},
		{name: "short password", mutate: func(r *models.RegisterUserRequest) { r.Password = "short" }, wantFields: []string{"password"}},
		{name: "long password", mutate: func(r *models.RegisterUserRequest) { r.Password = strings.Repeat("p", 73) }, wantFields: []string{"password"}},
		{
			name: "missing names",
			mutate: func(r *models.RegisterUserRequest) {
				r.FirstName = ""
				r.LastName = ""
			},
			wantFields: []string{"first_name", "last_name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := v.Validate(ctx, req)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrValidation)
			var fieldsErr *FieldsError
			require.True(t, errors.As(err, &fieldsErr))
			assert.Equal(t, tt.wantFields, fieldsErr.Fields)
		})
	}
}

func TestStructValidator_TodoCreate(t *testing.T) {
	v := NewStructValidator()

	assert.NoError(t, v.Validate(context.Background(), &models.TodoCreate{Description: "buy milk"}))
	assert.NoError(t, v.Validate(context.Background(), &models.TodoCreate{Description: "buy milk", Priority: models.PriorityTop}))
	assert.ErrorIs(t, v.Validate(context.Background(), &models.TodoCreate{}), ErrValidation)
	assert.ErrorIs(t, v.Validate(context.Background(), &models.TodoCreate{Description: "x", Priority: "Urgent"}), ErrValidation)
}

func TestStructValidator_PartialFields(t *testing.T) {
	v := NewStructValidator()

	change := models.PasswordChange{CurrentPassword: "old-password", NewPassword: "short"}

	err := v.Validate(context.Background(), change, "CurrentPassword")
	assert.NoError(t, err)

	err = v.Validate(context.Background(), change, "NewPassword")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStructValidator_LoginFormUsesLowercaseNames(t *testing.T) {
	v := NewStructValidator()

	err := v.Validate(context.Background(), models.LoginForm{})

	var fieldsErr *FieldsError
	require.True(t, errors.As(err, &fieldsErr))
	assert.Equal(t, []string{"username", "password"}, fieldsErr.Fields)
	assert.Equal(t, "validation failed: username, password", err.Error())
}

func TestStructValidator_UnsupportedType(t *testing.T) {
	v := NewStructValidator()

	assert.ErrorIs(t, v.Validate(context.Background(), "a string"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), nil), ErrUnsupportedType)
}
