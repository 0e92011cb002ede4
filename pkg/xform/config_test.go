package xform

import (
	"testing"

	"github.com/matzehuels/xformgraph/pkg/errors"
)

func newTestConfig() *Config {
	return NewConfig(
		PropertyDescriptor{Name: "file_name", Type: PropertyString},
		PropertyDescriptor{Name: "sigma", Type: PropertyFloat},
		PropertyDescriptor{Name: "brightness", Type: PropertyInt},
	)
}

func TestConfigSetGet(t *testing.T) {
	c := newTestConfig()

	c.SetString("file_name", "in.png")
	c.SetFloat("sigma", 1.5)
	c.SetInt("brightness", -20)

	if v, ok := c.String("file_name"); !ok || v != "in.png" {
		t.Errorf("String(file_name) = %q, %v", v, ok)
	}
	if v, ok := c.Float("sigma"); !ok || v != 1.5 {
		t.Errorf("Float(sigma) = %v, %v", v, ok)
	}
	if v, ok := c.Int("brightness"); !ok || v != -20 {
		t.Errorf("Int(brightness) = %v, %v", v, ok)
	}
}

func TestConfigIgnoresMismatch(t *testing.T) {
	c := newTestConfig()

	c.SetInt("sigma", 3)        // wrong type
	c.SetString("unknown", "x") // unknown name

	if c.IsSet("sigma") {
		t.Error("SetInt on a FLOAT property should be ignored")
	}
	if c.IsSet("unknown") {
		t.Error("setting an undeclared property should be ignored")
	}
	if _, ok := c.Int("sigma"); ok {
		t.Error("Int(sigma) should report ok=false")
	}
	if _, ok := c.String("brightness"); ok {
		t.Error("String on unset INT should report ok=false")
	}
	if c.TypeFor("unknown") != PropertyUnknown {
		t.Error("TypeFor(unknown) should be UNKNOWN")
	}
}

func TestConfigParse(t *testing.T) {
	tests := []struct {
		name    string
		prop    string
		raw     string
		want    string
		wantErr bool
	}{
		{"string", "file_name", "out.png", "out.png", false},
		{"float", "sigma", "3.25", "3.25", false},
		{"int", "brightness", " 42 ", "42", false},
		{"bad float", "sigma", "wide", "", true},
		{"bad int", "brightness", "1.5", "", true},
		{"unknown ignored", "nope", "1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConfig()
			err := c.Parse(tt.prop, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() code = %v", errors.GetCode(err))
			}
			got, _ := c.Text(tt.prop)
			if got != tt.want {
				t.Errorf("Text(%s) = %q, want %q", tt.prop, got, tt.want)
			}
		})
	}
}

func TestConfigDecode(t *testing.T) {
	c := newTestConfig()
	c.SetFloat("sigma", 0.8)

	params := struct {
		FileName   string  `mapstructure:"file_name"`
		Sigma      float64 `mapstructure:"sigma"`
		Brightness int     `mapstructure:"brightness"`
	}{Sigma: 2.4, Brightness: 5}

	if err := c.Decode(&params); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if params.Sigma != 0.8 {
		t.Errorf("Sigma = %v, want 0.8", params.Sigma)
	}
	if params.Brightness != 5 {
		t.Errorf("Brightness = %v, want default 5", params.Brightness)
	}
}

func TestPropertyTypeNames(t *testing.T) {
	for _, pt := range []PropertyType{PropertyString, PropertyFloat, PropertyInt, PropertyUnknown} {
		if got := ParsePropertyType(pt.String()); got != pt {
			t.Errorf("ParsePropertyType(%q) = %v, want %v", pt.String(), got, pt)
		}
	}
}
