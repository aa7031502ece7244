package config

import (
	"errors"
	"testing"

	yaml "gopkg.in/yaml.v3"
)

func TestParseLinkStrategy(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  LinkStrategy
		shouldErr bool
	}{
		{"base_url", "base_url", LinkStrategyBaseUrl, false},
		{"uppercase", "BASE_URL", LinkStrategyBaseUrl, false},
		{"mapping", "Mapping", LinkStrategyMapping, false},
		{"invalid", "csv", LinkStrategy(0), true},
		{"empty", "", LinkStrategy(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLinkStrategy(tt.input)
			if tt.shouldErr {
				if !errors.Is(err, ErrInvalidLinkStrategy) {
					t.Errorf("Expected ErrInvalidLinkStrategy, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ParseLinkStrategy(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLinkStrategyNames(t *testing.T) {
	names := LinkStrategyNames()
	expected := []string{"base_url", "mapping"}

	if len(names) != len(expected) {
		t.Fatalf("LinkStrategyNames() length = %d, want %d", len(names), len(expected))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("LinkStrategyNames()[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestDiscoveryOrder_IsValid(t *testing.T) {
	tests := []struct {
		order DiscoveryOrder
		valid bool
	}{
		{DiscoveryOrderName, true},
		{DiscoveryOrderNatural, true},
		{DiscoveryOrder(5), false},
		{DiscoveryOrder(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			if got := tt.order.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestEnums_YAML(t *testing.T) {
	type doc struct {
		Strategy LinkStrategy   `yaml:"strategy"`
		Order    DiscoveryOrder `yaml:"order"`
	}

	var d doc
	if err := yaml.Unmarshal([]byte("strategy: mapping\norder: natural\n"), &d); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if d.Strategy != LinkStrategyMapping || d.Order != DiscoveryOrderNatural {
		t.Errorf("Unmarshal() = %+v", d)
	}

	out, err := yaml.Marshal(doc{Strategy: LinkStrategyBaseUrl, Order: DiscoveryOrderName})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != "strategy: base_url\norder: name\n" {
		t.Errorf("Marshal() = %q", out)
	}

	if err := yaml.Unmarshal([]byte("strategy: guess\n"), &d); err == nil {
		t.Error("Expected error for unknown strategy")
	}
}
