package domain

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/emberhatch/menagerie/internal/hatchery"
)

func readResourceText(t *testing.T, handler mcp.ResourceHandler, uri string) string {
	t.Helper()

	result, err := handler(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	})
	if err != nil {
		t.Fatalf("read resource %s: %v", uri, err)
	}
	if result == nil || len(result.Contents) != 1 {
		t.Fatalf("expected exactly one content block, got %+v", result)
	}
	content := result.Contents[0]
	if content.URI != uri {
		t.Errorf("content URI = %q, want %q", content.URI, uri)
	}
	if content.MIMEType != "application/json" {
		t.Errorf("content MIME type = %q, want application/json", content.MIMEType)
	}
	return content.Text
}

func TestEggCatalogResourceHandler(t *testing.T) {
	cat := testCatalog(t)
	handler := EggCatalogResourceHandler(cat)

	t.Run("lists every egg with full odds", func(t *testing.T) {
		text := readResourceText(t, handler, "menagerie://catalog/eggs")

		var payload EggCatalogPayload
		if err := json.Unmarshal([]byte(text), &payload); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}

		eggs := make(map[string]EggCatalogEntry, len(payload.Eggs))
		for _, egg := range payload.Eggs {
			eggs[egg.Name] = egg
		}
		for _, name := range []string{"BASIC", "PREMIUM", "LEGENDARY"} {
			if _, ok := eggs[name]; !ok {
				t.Errorf("missing egg %q in payload", name)
			}
		}

		basic := eggs["BASIC"]
		total := 0
		for _, drop := range basic.Drops {
			total += drop.Percent
		}
		if total != 100 {
			t.Errorf("BASIC drop percents sum to %d, want 100", total)
		}
		if len(basic.Drops) == 0 || basic.Drops[0].Tier != "common" || basic.Drops[0].Percent != 50 {
			t.Errorf("BASIC first drop = %+v, want common at 50", basic.Drops)
		}
	})

	t.Run("rejects mismatched URI", func(t *testing.T) {
		_, err := handler(context.Background(), &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "menagerie://catalog/tiers"},
		})
		if err == nil {
			t.Fatal("expected error for mismatched URI")
		}
	})

	t.Run("rejects nil catalog", func(t *testing.T) {
		_, err := EggCatalogResourceHandler(nil)(context.Background(), nil)
		if err == nil {
			t.Fatal("expected error for nil catalog")
		}
	})
}

func TestTierCatalogResourceHandler(t *testing.T) {
	cat := testCatalog(t)

	text := readResourceText(t, TierCatalogResourceHandler(cat), "menagerie://catalog/tiers")

	var payload TierCatalogPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(payload.Tiers) != 6 {
		t.Fatalf("len(payload.Tiers) = %d, want 6", len(payload.Tiers))
	}

	common := payload.Tiers[0]
	if common.Name != "common" || common.Rank != 0 || common.Multiplier != 1.0 {
		t.Errorf("first tier = %+v, want common rank 0 multiplier 1.0", common)
	}
	if common.FusionTarget {
		t.Error("common must not be a fusion target")
	}

	godly := payload.Tiers[5]
	if godly.Name != "godly" || godly.Rank != 5 || godly.Multiplier != 3.0 {
		t.Errorf("last tier = %+v, want godly rank 5 multiplier 3.0", godly)
	}
	if !godly.FusionTarget || godly.FusionMaterials != 4 || godly.FusionCost != 8100 {
		t.Errorf("godly fusion columns = %+v, want target with 4 materials at 8100", godly)
	}
}

func TestAffinityCatalogResourceHandler(t *testing.T) {
	cat := testCatalog(t)

	text := readResourceText(t, AffinityCatalogResourceHandler(cat), "menagerie://catalog/affinities")

	var payload AffinityCatalogPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(payload.Affinities) != 6 {
		t.Fatalf("len(payload.Affinities) = %d, want 6", len(payload.Affinities))
	}

	var fire *AffinityCatalogEntry
	for i := range payload.Affinities {
		if payload.Affinities[i].Name == "fire" {
			fire = &payload.Affinities[i]
			break
		}
	}
	if fire == nil {
		t.Fatal("missing fire affinity in payload")
	}
	if fire.DisplayName != "Fire" || fire.Species != "Emberwing" {
		t.Errorf("fire entry = %+v, want display Fire species Emberwing", fire)
	}
	if len(fire.StrongAgainst) != 1 || fire.StrongAgainst[0] != "air" {
		t.Errorf("fire.StrongAgainst = %v, want [air]", fire.StrongAgainst)
	}
	if len(fire.WeakAgainst) != 1 || fire.WeakAgainst[0] != "water" {
		t.Errorf("fire.WeakAgainst = %v, want [water]", fire.WeakAgainst)
	}
	if len(fire.Abilities) != 4 {
		t.Errorf("len(fire.Abilities) = %d, want 4", len(fire.Abilities))
	}
}

func TestEggOddsResourceHandler(t *testing.T) {
	cat := testCatalog(t)
	handler := EggOddsResourceHandler(hatchery.NewGenerator(cat))

	t.Run("returns canonical odds for lowercase egg type", func(t *testing.T) {
		text := readResourceText(t, handler, "menagerie://catalog/eggs/basic")

		var payload EggOddsPayload
		if err := json.Unmarshal([]byte(text), &payload); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if payload.EggType != "BASIC" {
			t.Errorf("payload.EggType = %q, want BASIC", payload.EggType)
		}
		if len(payload.Odds) != 5 {
			t.Fatalf("len(payload.Odds) = %d, want 5", len(payload.Odds))
		}
		total := 0
		for i, odds := range payload.Odds {
			total += odds.Percent
			if i > 0 && odds.Percent > payload.Odds[i-1].Percent {
				t.Errorf("odds are not descending at %d: %+v", i, payload.Odds)
			}
		}
		if total != 100 {
			t.Errorf("odds sum to %d, want 100", total)
		}
	})

	t.Run("unknown egg type fails", func(t *testing.T) {
		_, err := handler(context.Background(), &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "menagerie://catalog/eggs/mystery"},
		})
		if err == nil {
			t.Fatal("expected error for unknown egg type")
		}
		if !strings.Contains(err.Error(), "egg odds failed") {
			t.Errorf("error = %v, want egg odds failure", err)
		}
	})

	t.Run("missing request fails", func(t *testing.T) {
		if _, err := handler(context.Background(), nil); err == nil {
			t.Fatal("expected error for missing request")
		}
	})

	t.Run("nil generator fails", func(t *testing.T) {
		_, err := EggOddsResourceHandler(nil)(context.Background(), &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "menagerie://catalog/eggs/basic"},
		})
		if err == nil {
			t.Fatal("expected error for nil generator")
		}
	})
}

func TestParseEggTypeFromResourceURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    string
		wantErr bool
	}{
		{"lowercase segment", "menagerie://catalog/eggs/basic", "basic", false},
		{"canonical segment", "menagerie://catalog/eggs/PREMIUM", "PREMIUM", false},
		{"missing segment", "menagerie://catalog/eggs/", "", true},
		{"whitespace segment", "menagerie://catalog/eggs/   ", "", true},
		{"nested segment", "menagerie://catalog/eggs/a/b", "", true},
		{"wrong scheme", "catalog://eggs/basic", "", true},
		{"collection URI", "menagerie://catalog/eggs", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEggTypeFromResourceURI(tt.uri)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseEggTypeFromResourceURI(%q) expected error", tt.uri)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseEggTypeFromResourceURI(%q) error: %v", tt.uri, err)
			}
			if got != tt.want {
				t.Errorf("parseEggTypeFromResourceURI(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}
