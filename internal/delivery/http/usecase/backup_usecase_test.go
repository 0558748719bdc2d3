package usecase

import (
	"errors"
	"strings"
	"testing"
)

func validBackupJSON() string {
	return `{
		"version": 1,
		"exportedAt": "2025-03-07T10:00:00Z",
		"data": {
			"question_types": [{"id": "type-lang", "name": "Language"}],
			"templates": [],
			"template_items": [],
			"sessions": [],
			"session_items": [],
			"question_records": [],
			"stats_daily": [],
			"settings": []
		}
	}`
}

func TestParseBackupAcceptsV1(t *testing.T) {
	payload, err := parseBackup([]byte(validBackupJSON()))
	if err != nil {
		t.Fatalf("parseBackup: %v", err)
	}
	if payload.Version != 1 {
		t.Errorf("version = %d", payload.Version)
	}
	if len(payload.Data.QuestionTypes) != 1 || payload.Data.QuestionTypes[0].ID != "type-lang" {
		t.Errorf("question types = %+v", payload.Data.QuestionTypes)
	}
}

func TestParseBackupRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		message string
	}{
		{
			name:    "not json",
			mutate:  func(string) string { return "{broken" },
			message: "invalid backup",
		},
		{
			name:    "wrong version",
			mutate:  func(s string) string { return strings.Replace(s, `"version": 1`, `"version": 2`, 1) },
			message: "unsupported version",
		},
		{
			name:    "missing collection",
			mutate:  func(s string) string { return strings.Replace(s, `"stats_daily": [],`, ``, 1) },
			message: "missing collection stats_daily",
		},
		{
			name:    "collection not array",
			mutate:  func(s string) string { return strings.Replace(s, `"settings": []`, `"settings": {}`, 1) },
			message: "not an array",
		},
		{
			name:    "missing data",
			mutate:  func(string) string { return `{"version": 1}` },
			message: "missing data",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseBackup([]byte(tt.mutate(validBackupJSON())))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidBackup) {
				t.Errorf("err = %v, want ErrInvalidBackup", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("err = %q, want substring %q", err.Error(), tt.message)
			}
		})
	}
}
