package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcmexdev/digital-storefront/internal/storefront/core/domain/entity"
)

func TestValidateCustomer(t *testing.T) {
	t.Parallel()

	valid := entity.Customer{Name: "A", Email: "a@b.com", Phone: "9876543210"}

	tests := []struct {
		name     string
		mutate   func(c *entity.Customer)
		expected FieldErrors
	}{
		{
			name:     "valid",
			mutate:   func(*entity.Customer) {},
			expected: FieldErrors{},
		},
		{
			name:     "blank name",
			mutate:   func(c *entity.Customer) { c.Name = "   " },
			expected: FieldErrors{FieldName: "Name is required"},
		},
		{
			name:     "missing email",
			mutate:   func(c *entity.Customer) { c.Email = "" },
			expected: FieldErrors{FieldEmail: "Email is required"},
		},
		{
			name:     "email without dot",
			mutate:   func(c *entity.Customer) { c.Email = "a@b" },
			expected: FieldErrors{FieldEmail: "Email is invalid"},
		},
		{
			name:     "email without at",
			mutate:   func(c *entity.Customer) { c.Email = "ab.com" },
			expected: FieldErrors{FieldEmail: "Email is invalid"},
		},
		{
			name:     "missing phone",
			mutate:   func(c *entity.Customer) { c.Phone = " " },
			expected: FieldErrors{FieldPhone: "Phone number is required"},
		},
		{
			name:     "short phone",
			mutate:   func(c *entity.Customer) { c.Phone = "987654321" },
			expected: FieldErrors{FieldPhone: "Phone number must be 10 digits"},
		},
		{
			name:     "phone with letters",
			mutate:   func(c *entity.Customer) { c.Phone = "98765abcde" },
			expected: FieldErrors{FieldPhone: "Phone number must be 10 digits"},
		},
		{
			name:     "phone with eleven digits",
			mutate:   func(c *entity.Customer) { c.Phone = "98765432101" },
			expected: FieldErrors{FieldPhone: "Phone number must be 10 digits"},
		},
		{
			name: "everything wrong",
			mutate: func(c *entity.Customer) {
				*c = entity.Customer{}
			},
			expected: FieldErrors{
				FieldName:  "Name is required",
				FieldEmail: "Email is required",
				FieldPhone: "Phone number is required",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := valid
			tt.mutate(&c)

			got := ValidateCustomer(c)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, len(tt.expected) == 0, got.Valid())
		})
	}
}

func TestFieldErrorsClearOnlyTouchesOneField(t *testing.T) {
	errs := ValidateCustomer(entity.Customer{})

	errs.Clear(FieldEmail)

	assert.Equal(t, FieldErrors{
		FieldName:  "Name is required",
		FieldPhone: "Phone number is required",
	}, errs)
}

func TestIsField(t *testing.T) {
	assert.True(t, IsField("phone"))
	assert.False(t, IsField("address"))
}
