package user

import (
	"encoding/json"
	stderrors "errors"

	"github.com/go-playground/validator/v10"

	"github.com/userfeed/userfeed/pkg/errors"
)

// record mirrors the backend wire shape. Pointer fields distinguish an
// absent key from a present zero value.
type record struct {
	ID    *int64  `json:"id" validate:"required"`
	Name  *string `json:"name" validate:"required"`
	Email *string `json:"email" validate:"required"`
}

var validate = validator.New()

// Decode deserializes a single backend record into a User. It validates
// the record shape explicitly and fails fast with a MalformedRecordError
// when a required key is absent or of the wrong type.
func Decode(raw []byte) (*User, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) {
			return nil, errors.NewMalformedRecordError(typeErr.Field, "unexpected type "+typeErr.Value)
		}
		return nil, errors.NewMalformedRecordError("", err.Error())
	}

	if err := validate.Struct(rec); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			e := validationErrors[0]
			return nil, errors.NewMalformedRecordError(e.Field(), "required key is missing")
		}
		return nil, errors.NewMalformedRecordError("", err.Error())
	}

	return &User{
		ID:    *rec.ID,
		Name:  *rec.Name,
		Email: *rec.Email,
	}, nil
}

// Encode serializes a User into its backend record form. Encoding a
// constructed User cannot fail, so Encode is total.
func Encode(u *User) []byte {
	rec := record{
		ID:    &u.ID,
		Name:  &u.Name,
		Email: &u.Email,
	}
	b, _ := json.Marshal(rec)
	return b
}
