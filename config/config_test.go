package config

import (
	"reflect"
	"testing"
)

func TestParseAdminIDs(t *testing.T) {
	tests := []struct {
		raw  string
		want []int64
	}{
		{"", nil},
		{"123", []int64{123}},
		{"123,456", []int64{123, 456}},
		{" 123 , 456 ", []int64{123, 456}},
		{"123,abc,456", []int64{123, 456}},
		{",,", nil},
	}
	for _, tt := range tests {
		got := parseAdminIDs(tt.raw)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseAdminIDs(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestIsAdmin(t *testing.T) {
	cfg := &Config{Telegram: TelegramConfig{AdminIDs: []int64{10, 20}}}
	if !cfg.IsAdmin(10) {
		t.Error("IsAdmin(10) = false, want true")
	}
	if cfg.IsAdmin(30) {
		t.Error("IsAdmin(30) = true, want false")
	}
}
