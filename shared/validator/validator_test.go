package validator_test

import (
	"strings"
	"testing"

	"atrium/shared/validator"
)

type reservationForm struct {
	SpaceID   string `validate:"required,uuid" json:"space_id"`
	Date      string `validate:"required,datetime=2006-01-02" json:"date"`
	Attendees int    `validate:"gte=1,lte=500" json:"attendees"`
	Status    string `validate:"omitempty,oneof=pending approved rejected" json:"status"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *reservationForm
		expectError bool
	}{
		{
			name: "valid struct",
			data: &reservationForm{
				SpaceID:   "550e8400-e29b-41d4-a716-446655440000",
				Date:      "2026-03-02",
				Attendees: 10,
				Status:    "pending",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &reservationForm{
				Date:      "2026-03-02",
				Attendees: 10,
			},
			expectError: true,
		},
		{
			name: "invalid uuid",
			data: &reservationForm{
				SpaceID:   "not-a-uuid",
				Date:      "2026-03-02",
				Attendees: 10,
			},
			expectError: true,
		},
		{
			name: "malformed date",
			data: &reservationForm{
				SpaceID:   "550e8400-e29b-41d4-a716-446655440000",
				Date:      "02-03-2026",
				Attendees: 10,
			},
			expectError: true,
		},
		{
			name: "attendees out of range",
			data: &reservationForm{
				SpaceID:   "550e8400-e29b-41d4-a716-446655440000",
				Date:      "2026-03-02",
				Attendees: 501,
			},
			expectError: true,
		},
		{
			name: "invalid status",
			data: &reservationForm{
				SpaceID:   "550e8400-e29b-41d4-a716-446655440000",
				Date:      "2026-03-02",
				Attendees: 10,
				Status:    "archived",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid email",
			field:       "user@example.com",
			tag:         "email",
			expectError: false,
		},
		{
			name:        "invalid email",
			field:       "invalid-email",
			tag:         "email",
			expectError: true,
		},
		{
			name:        "number in range",
			field:       25,
			tag:         "gte=0,lte=100",
			expectError: false,
		},
		{
			name:        "number out of range",
			field:       150,
			tag:         "gte=0,lte=100",
			expectError: true,
		},
		{
			name:        "matching mimetype",
			field:       "data:image/png;base64,iVBORw0KGgo=",
			tag:         "mimetypes=image/png",
			expectError: false,
		},
		{
			name:        "mismatched mimetype",
			field:       "data:application/pdf;base64,JVBERi0=",
			tag:         "mimetypes=image/png",
			expectError: true,
		},
		{
			name:        "file within size limit",
			field:       "data:image/png;base64,iVBORw0KGgo=",
			tag:         "maxfilesize=1",
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"space_id":"550e8400-e29b-41d4-a716-446655440000","date":"2026-03-02","attendees":10}`,
			expectError: false,
		},
		{
			name:        "invalid field value",
			jsonBody:    `{"space_id":"not-a-uuid","date":"2026-03-02","attendees":10}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"space_id":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data reservationForm
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	data := &reservationForm{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	if !strings.Contains(err.Error(), "required") {
		t.Errorf("expected descriptive error message containing 'required', got: %s", err.Error())
	}
}
