package decode_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/JaimeStill/storefront/pkg/decode"
)

type command struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"lamp","price":1200}`, false},
		{"trailing whitespace", `{"name":"lamp"}` + "\n", false},
		{"unknown field", `{"name":"lamp","colour":"red"}`, true},
		{"wrong type", `{"name":"lamp","price":"cheap"}`, true},
		{"empty", ``, true},
		{"two values", `{"name":"a"} {"name":"b"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decode.JSON[command](strings.NewReader(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("JSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.Name != "lamp" {
				t.Errorf("JSON() = %+v", got)
			}
		})
	}
}

func TestJSON_TrailingData(t *testing.T) {
	_, err := decode.JSON[command](strings.NewReader(`{"name":"a"} {"name":"b"}`))
	if !errors.Is(err, decode.ErrTrailingData) {
		t.Errorf("JSON() error = %v, want ErrTrailingData", err)
	}
}

func TestRaw(t *testing.T) {
	got, err := decode.Raw[command](json.RawMessage(`{"name":"lamp","price":5}`))
	if err != nil || got.Price != 5 {
		t.Errorf("Raw() = %+v, %v", got, err)
	}

	if _, err := decode.Raw[command](nil); err == nil {
		t.Error("Raw(nil) should fail")
	}
}
