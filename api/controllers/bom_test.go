package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kitboxworks/kitbox-backend/internal/bom"
	"github.com/kitboxworks/kitbox-backend/pkg/metrics"
)

const validConfigurationJSON = `{
	"name": "workshop cabinet",
	"width_cm": 32,
	"depth_cm": 32,
	"color": "white",
	"angle_iron_finish": "white",
	"compartments": [
		{"height_cm": 32, "width_cm": 32, "depth_cm": 32}
	]
}`

func TestGenerateBOM_Success(t *testing.T) {
	handler := GenerateBOM(bom.NewGenerator(nil), metrics.NewAPIMetrics(nil), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bom", strings.NewReader(validConfigurationJSON))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Requirements    []bom.PartRequirement `json:"requirements"`
			OverallHeightCM int                   `json:"overall_height_cm"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if envelope.Data.OverallHeightCM != 36 {
		t.Fatalf("expected overall height 36, got %d", envelope.Data.OverallHeightCM)
	}
	if got := bom.RequirementForCode(envelope.Data.Requirements, "BAT-32"); got != 4 {
		t.Fatalf("expected 4 battens, got %d", got)
	}
	if got := bom.RequirementForCode(envelope.Data.Requirements, "FOOT-STD"); got != 4 {
		t.Fatalf("expected 4 feet, got %d", got)
	}
}

func TestGenerateBOM_RejectsBadPayloads(t *testing.T) {
	handler := GenerateBOM(bom.NewGenerator(nil), metrics.NewAPIMetrics(nil), nil)

	cases := []struct {
		name string
		body string
	}{
		{"malformedJSON", `{"width_cm": `},
		{"unknownField", `{"width_cm": 32, "depth_cm": 32, "color": "white", "angle_iron_finish": "white", "compartments": [{"height_cm": 32, "width_cm": 32, "depth_cm": 32}], "surprise": true}`},
		{"missingCompartments", `{"width_cm": 32, "depth_cm": 32, "color": "white", "angle_iron_finish": "white", "compartments": []}`},
		{"badColor", `{"width_cm": 32, "depth_cm": 32, "color": "plaid", "angle_iron_finish": "white", "compartments": [{"height_cm": 32, "width_cm": 32, "depth_cm": 32}]}`},
		{"negativeHeight", `{"width_cm": 32, "depth_cm": 32, "color": "white", "angle_iron_finish": "white", "compartments": [{"height_cm": -1, "width_cm": 32, "depth_cm": 32}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/bom", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			var envelope struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if envelope.Error.Code != "VALIDATION_ERROR" {
				t.Fatalf("expected VALIDATION_ERROR, got %q", envelope.Error.Code)
			}
		})
	}
}
