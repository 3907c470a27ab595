package handler

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		req        registerRequest
		wantFields []string
	}{
		{
			name: "valid",
			req:  registerRequest{Username: "maria", Email: "maria@example.com", Password: "password123"},
		},
		{
			name:       "all missing",
			req:        registerRequest{},
			wantFields: []string{"username", "email", "password"},
		},
		{
			name:       "bad email",
			req:        registerRequest{Username: "maria", Email: "not-an-email", Password: "password123"},
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			req:        registerRequest{Username: "maria", Email: "maria@example.com", Password: "short"},
			wantFields: []string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			assert.Len(t, errs, len(tt.wantFields))
			for i, f := range tt.wantFields {
				assert.Equal(t, f, errs[i].Field)
			}
		})
	}
}

func TestRecordExpenseRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		req        recordExpenseRequest
		wantFields []string
	}{
		{
			name: "valid",
			req:  recordExpenseRequest{Amount: decimal.RequireFromString("4.35"), Description: "espresso", Category: "food", Merchant: "Cafe"},
		},
		{
			name:       "zero amount",
			req:        recordExpenseRequest{Description: "espresso", Category: "food", Merchant: "Cafe"},
			wantFields: []string{"amount"},
		},
		{
			name:       "negative amount",
			req:        recordExpenseRequest{Amount: decimal.RequireFromString("-1"), Description: "espresso", Category: "food", Merchant: "Cafe"},
			wantFields: []string{"amount"},
		},
		{
			name:       "blank description",
			req:        recordExpenseRequest{Amount: decimal.RequireFromString("4.35"), Description: "   ", Category: "food", Merchant: "Cafe"},
			wantFields: []string{"description"},
		},
		{
			name:       "missing category",
			req:        recordExpenseRequest{Amount: decimal.RequireFromString("1"), Description: "espresso", Merchant: "Cafe"},
			wantFields: []string{"category"},
		},
		{
			name:       "unknown category",
			req:        recordExpenseRequest{Amount: decimal.RequireFromString("1"), Description: "espresso", Category: "gadgets", Merchant: "Cafe"},
			wantFields: []string{"category"},
		},
		{
			name:       "missing merchant",
			req:        recordExpenseRequest{Amount: decimal.RequireFromString("1"), Description: "espresso", Category: "food"},
			wantFields: []string{"merchant"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			assert.Len(t, errs, len(tt.wantFields))
			for i, f := range tt.wantFields {
				assert.Equal(t, f, errs[i].Field)
			}
		})
	}
}

func TestCreateMovementRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		req        createMovementRequest
		wantFields []string
	}{
		{
			name: "valid credit",
			req:  createMovementRequest{Kind: "credit", Amount: decimal.RequireFromString("1.00")},
		},
		{
			name: "valid debit",
			req:  createMovementRequest{Kind: "debit", Amount: decimal.RequireFromString("1.00")},
		},
		{
			name:       "bad kind",
			req:        createMovementRequest{Kind: "transfer", Amount: decimal.RequireFromString("1.00")},
			wantFields: []string{"kind"},
		},
		{
			name:       "zero amount",
			req:        createMovementRequest{Kind: "credit"},
			wantFields: []string{"amount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			assert.Len(t, errs, len(tt.wantFields))
			for i, f := range tt.wantFields {
				assert.Equal(t, f, errs[i].Field)
			}
		})
	}
}
