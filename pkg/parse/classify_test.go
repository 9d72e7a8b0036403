package parse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input        string
		expectedType InputType
		value        string
		name         string
	}{
		{"http://google.com", InputTypeDomain, "google.com", ""},
		{"https://amazon.com", InputTypeDomain, "amazon.com", ""},
		{"http://google.com?id=1232#fda", InputTypeDomain, "google.com", ""},
		{"http://www.google.com?id=1232#fda", InputTypeDomain, "google.com", ""},
		{"http://attio.com/ada/", InputTypeDomain, "attio.com", ""},
		{"attio.com", InputTypeDomain, "attio.com", ""},
		{"app.attio.com/test?adf=122", InputTypeDomain, "attio.com", ""},
		{"tony@venice.is", InputTypeEmail, "tony@venice.is", ""},
		{"Hi Venice <hi@venice.is>", InputTypeEmail, "hi@venice.is", "Hi Venice"},
		{"A Group:Ed Jones <c@a.test>,joe@where.test;", InputTypeEmail, "c@a.test", "Ed Jones"},
		{"hi@venice.is trailing", InputTypeEmail, "hi@venice.is", ""},
		{"hi@venice.is; junk", InputTypeEmail, "hi@venice.is", ""},
		{"https://medium.com/@user", InputTypeDomain, "medium.com", ""},
		{"dd", InputTypeError, "", ""},
		{"bademal", InputTypeError, "", ""},
		{"@venice.is>", InputTypeError, "", ""},
		{"@venice.is", InputTypeError, "", ""},
		{"", InputTypeError, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			classified := Classify(tt.input)

			assert.Equal(t, tt.expectedType, classified.Type)
			assert.Equal(t, tt.value, classified.Value)
			assert.Equal(t, tt.name, classified.Name)
		})
	}

	t.Run("should keep the parsed mailbox for emails", func(t *testing.T) {
		classified := Classify("Mary Ann Smith <mary@smith.test>")

		assert.Equal(t, "mary@smith.test", classified.Email.Address)
		assert.Equal(t, "Mary", classified.Email.FirstName)
		assert.Equal(t, "Ann Smith", classified.Email.LastName)
	})
}

func TestClassifiedInputMarshalJSON(t *testing.T) {
	t.Run("should marshal an error with a null value", func(t *testing.T) {
		data, err := json.Marshal(Classify("bademal"))

		assert.NoError(t, err)
		assert.JSONEq(t, `{"type":"error","value":null}`, string(data))
	})

	t.Run("should marshal an email with its name", func(t *testing.T) {
		data, err := json.Marshal(Classify("Hi Venice <hi@venice.is>"))

		assert.NoError(t, err)
		assert.JSONEq(t, `{"type":"email","value":"hi@venice.is","name":"Hi Venice"}`, string(data))
	})

	t.Run("should marshal a domain without a name", func(t *testing.T) {
		data, err := json.Marshal(Classify("https://www.attio.com"))

		assert.NoError(t, err)
		assert.JSONEq(t, `{"type":"domain","value":"attio.com"}`, string(data))
	})
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		input string
		first string
		last  string
	}{
		{"T X", "T", "X"},
		{"", "", ""},
		{"Chris", "Chris", ""},
		{"Chris ", "Chris", ""},
		{"  Mary   Ann  Smith ", "Mary", "Ann Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			first, last := SplitName(tt.input)

			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("9f3b6b8e-3c1a-4d6a-9c8e-0f1d2e3a4b5c"))
	assert.False(t, IsUUID("urn:uuid:9f3b6b8e-3c1a-4d6a-9c8e-0f1d2e3a4b5c"))
	assert.False(t, IsUUID("tony@venice.is"))
	assert.False(t, IsUUID(""))
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
	}{
		{"nil", nil, 0},
		{"integer", 42, 42},
		{"float rounds to cents", 10.456, 10.46},
		{"plain string", "1234.5", 1234.5},
		{"symbol and grouping", "$1,234.56", 1234.56},
		{"negative", "-$12.10", -12.1},
		{"parentheses", "(45.00)", -45},
		{"minus inside parentheses", "(-5)", -5},
		{"parentheses around a symbol", "($5.25)", -5.25},
		{"text", "hello", 0},
		{"empty", "", 0},
		{"two decimal points", "1.2.3", 0},
		{"unsupported type", []string{"1"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCurrency(tt.input))
		})
	}
}
