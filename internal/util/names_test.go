package util

import "testing"

func TestCamelToSnake(t *testing.T) {
	cases := map[string]string{
		"datasetContact":     "dataset_contact",
		"dsDescriptionValue": "ds_description_value",
		"title":              "title",
		"otherIdAgency":      "other_id_agency",
	}
	for in, want := range cases {
		if got := CamelToSnake(in); got != want {
			t.Errorf("CamelToSnake(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanName(t *testing.T) {
	if got := CleanName("Author Name (ORCID)"); got != "Author Name  ORCID" {
		t.Errorf("CleanName = %q", got)
	}
}

func TestDisplayNameKey(t *testing.T) {
	if got := DisplayNameKey("Grant Information"); got != "grant_information" {
		t.Errorf("DisplayNameKey = %q", got)
	}
}
