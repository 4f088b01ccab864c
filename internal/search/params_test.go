package search

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseValuesDropsBlankFields(t *testing.T) {
	values := url.Values{}
	values.Set(KeyQuery, "   ")
	values.Set(KeyCategory, "")

	got := ParseValues(values)
	if diff := cmp.Diff(Params{}, got); diff != "" {
		t.Fatalf("ParseValues mismatch (-want +got):\n%s", diff)
	}
	if got.HasConstraints() {
		t.Fatal("blank input should carry no constraints")
	}
	if len(got.Values()) != 0 {
		t.Fatalf("expected empty values, got %v", got.Values())
	}
}

func TestParseValuesTrimsQueryOnly(t *testing.T) {
	values := url.Values{}
	values.Set(KeyQuery, "  Solar  ")
	values.Set(KeyStatus, "Active")

	got := ParseValues(values)
	want := Params{Query: "Solar", Status: "Active"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParseValues mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterValuesStayExact(t *testing.T) {
	// Equality filters are case-sensitive; the builder must not normalize them.
	values := url.Values{}
	values.Set(KeyCategory, "DeFi")
	values.Set(KeyGovernanceModel, "DAO ")

	got := ParseValues(values)
	if got.Category != "DeFi" {
		t.Fatalf("Category = %q, want %q", got.Category, "DeFi")
	}
	if got.GovernanceModel != "DAO " {
		t.Fatalf("GovernanceModel = %q, want %q", got.GovernanceModel, "DAO ")
	}
}

func TestValuesRoundTrip(t *testing.T) {
	p := Params{
		Query:           "open source",
		Category:        "Climate",
		FundingPlatform: "Gitcoin",
		Status:          "Needs Support",
	}
	got := ParseValues(p.Values())
	if diff := cmp.Diff(p, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestValuesOmitsEmptyFields(t *testing.T) {
	p := Params{Status: "Active"}
	values := p.Values()
	if len(values) != 1 || values.Get(KeyStatus) != "Active" {
		t.Fatalf("unexpected values: %v", values)
	}
	for _, key := range []string{KeyQuery, KeyCategory, KeyFundingPlatform, KeyGovernanceModel} {
		if _, ok := values[key]; ok {
			t.Fatalf("key %q should be omitted", key)
		}
	}
}
