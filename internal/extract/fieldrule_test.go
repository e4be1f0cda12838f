package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Itsforsale2/Billdozer2/internal/extract"
)

func page(lines ...string) extract.Page {
	return extract.Page{DocID: "test.pdf", Number: 1, Lines: lines}
}

func TestNewPage(t *testing.T) {
	p := extract.NewPage("doc.pdf", 3, "  Invoice #\n\n\x00\n 12345 \n\t\n")
	assert.Equal(t, "doc.pdf", p.DocID)
	assert.Equal(t, 3, p.Number)
	assert.Equal(t, []string{"Invoice #", "12345"}, p.Lines)
	assert.Equal(t, "Invoice #\n12345", p.Text())
}

func TestAnchoredRegex(t *testing.T) {
	t.Run("value_on_next_line", func(t *testing.T) {
		r := extract.NewAnchoredRegex(`(?i)Invoice\s*#\s*\n\s*([A-Z0-9]+)`, 1)
		assert.Equal(t, "12345", r.Extract(page("Invoice #", "12345")))
	})

	t.Run("no_match_is_empty", func(t *testing.T) {
		r := extract.NewAnchoredRegex(`Total Amount Due\s*\n\s*\$?([0-9,]+\.[0-9]+)`, 1)
		assert.Equal(t, "", r.Extract(page("nothing relevant")))
	})

	t.Run("comma_free", func(t *testing.T) {
		r := extract.NewAnchoredRegex(`Total Amount Due\s*\n\s*\$?([0-9,]+\.[0-9]+)`, 1).CommaFree()
		assert.Equal(t, "1025.28", r.Extract(page("Total Amount Due", "$1,025.28")))
	})
}

func TestFirstLineAfterLabel(t *testing.T) {
	r := extract.FirstLineAfterLabel{Label: "Invoice #", Fold: true}

	t.Run("returns_following_line", func(t *testing.T) {
		assert.Equal(t, "FW-8841", r.Extract(page("Remit To", "invoice #", "FW-8841", "JOB")))
	})

	t.Run("label_absent", func(t *testing.T) {
		assert.Equal(t, "", r.Extract(page("no labels")))
	})

	t.Run("label_is_last_line", func(t *testing.T) {
		assert.Equal(t, "", r.Extract(page("header", "Invoice #")))
	})

	t.Run("case_sensitive_without_fold", func(t *testing.T) {
		strict := extract.FirstLineAfterLabel{Label: "JOB"}
		assert.Equal(t, "", strict.Extract(page("job", "Riverside Phase 2")))
		assert.Equal(t, "Riverside Phase 2", strict.Extract(page("JOB", "Riverside Phase 2")))
	})
}

func TestLastLineBeforeLabel(t *testing.T) {
	t.Run("backward_scan_skips_bad_words", func(t *testing.T) {
		r := extract.LastLineBeforeLabel{
			Label:     "ORIGINAL",
			Direction: extract.ScanBackward,
			MaxScan:   2,
			SkipWords: []string{"INVOICE", "TICKET", "PAYABLE COPY", "SUBTOTAL", "TOTAL"},
		}
		assert.Equal(t, "Hwy 93 Overlay", r.Extract(page("Hwy 93 Overlay", "ORIGINAL")))
		assert.Equal(t, "Hwy 93 Overlay", r.Extract(page("Hwy 93 Overlay", "INVOICE", "ORIGINAL")))
		assert.Equal(t, "", r.Extract(page("SUBTOTAL", "INVOICE", "ORIGINAL")))
	})

	t.Run("forward_scan_rejects_dates_and_codes", func(t *testing.T) {
		r := extract.LastLineBeforeLabel{
			Label:        "job name",
			Contains:     true,
			Direction:    extract.ScanForward,
			SkipPrefixes: []string{"invoice", "date ordered"},
		}
		p := page(
			"Customer PO # / Job Name",
			"Invoice # 100233",
			"10/1/2025",
			"AB10299301",
			"Riverside Lift Station",
		)
		assert.Equal(t, "Riverside Lift Station", r.Extract(p))
	})

	t.Run("empty_when_nothing_qualifies", func(t *testing.T) {
		r := extract.LastLineBeforeLabel{Label: "job name", Contains: true, Direction: extract.ScanForward}
		assert.Equal(t, "", r.Extract(page("Job Name", "10/1/2025")))
	})

	t.Run("single_mixed_case_word_is_not_a_code", func(t *testing.T) {
		r := extract.LastLineBeforeLabel{
			Label:     "ORIGINAL",
			Direction: extract.ScanBackward,
			MaxScan:   2,
		}
		assert.Equal(t, "Riverside", r.Extract(page("968457", "Riverside", "ORIGINAL")))
	})

	t.Run("all_caps_code_still_rejected", func(t *testing.T) {
		r := extract.LastLineBeforeLabel{
			Label:     "ORIGINAL",
			Direction: extract.ScanBackward,
			MaxScan:   2,
		}
		assert.Equal(t, "", r.Extract(page("968457", "AB10299301", "ORIGINAL")))
	})
}

func TestMaxNumericMatch(t *testing.T) {
	r := extract.NewMaxNumericMatch("")

	t.Run("greatest_value_comma_free", func(t *testing.T) {
		p := page("Fee $10.00", "Haul charge $250.75", "Misc $90.00")
		assert.Equal(t, "250.75", r.Extract(p))
	})

	t.Run("commas_stripped_from_result", func(t *testing.T) {
		p := page("40.00", "1,025.28", "440.70")
		assert.Equal(t, "1025.28", r.Extract(p))
	})

	t.Run("tie_breaks_to_first_occurrence", func(t *testing.T) {
		p := page("250.75 first", "250.75 again")
		assert.Equal(t, "250.75", r.Extract(p))
	})

	t.Run("empty_without_candidates", func(t *testing.T) {
		assert.Equal(t, "", r.Extract(page("no money here")))
	})

	t.Run("idempotent", func(t *testing.T) {
		p := page("Fee $10.00", "Haul charge $250.75", "Misc $90.00")
		first := r.Extract(p)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, r.Extract(p))
		}
	})

	t.Run("dollar_required_pattern", func(t *testing.T) {
		strict := extract.NewMaxNumericMatch(`\$(\d{1,3}(?:,\d{3})*\.\d{2})`)
		p := page("999.99 net weight", "total $90.00")
		assert.Equal(t, "90.00", strict.Extract(p))
	})
}

func TestLastNumericMatch(t *testing.T) {
	r := extract.NewLastNumericMatch("")

	t.Run("last_occurrence_wins", func(t *testing.T) {
		p := page("440.70", "1,025.28", "440.70")
		assert.Equal(t, "440.70", r.Extract(p))
	})

	t.Run("empty_without_candidates", func(t *testing.T) {
		assert.Equal(t, "", r.Extract(page("nothing")))
	})

	t.Run("no_amount_carved_out_of_longer_numbers", func(t *testing.T) {
		p := page("Ticket 968457", "Total Due", "1234.56")
		assert.Equal(t, "", r.Extract(p))
	})

	t.Run("comma_grouped_amount_still_found", func(t *testing.T) {
		p := page("Ticket 968457", "Total Due", "1,234.56")
		assert.Equal(t, "1234.56", r.Extract(p))
	})
}

func TestFirstLineMatching(t *testing.T) {
	r := extract.FirstLineMatching{Match: extract.DigitRun(6, 0).Match}
	p := page("Knife River", "09/08/25", "968457", "940775")
	assert.Equal(t, "968457", r.Extract(p))
	assert.Equal(t, "", r.Extract(page("no digit runs")))
}

func TestFirstDateOnPage(t *testing.T) {
	r := extract.FirstDateOnPage{}
	assert.Equal(t, "09/08/25", r.Extract(page("header", "Invoice Date 09/08/25", "10/02/25")))
	assert.Equal(t, "", r.Extract(page("header")))
}

func TestCodeNearLabel(t *testing.T) {
	r := extract.CodeNearLabel{Label: "SIGNATURE", Window: 4, Shape: extract.DigitRun(6, 7)}

	t.Run("prefers_lines_after_label", func(t *testing.T) {
		p := page("123456", "SIGNATURE", "01", "884213")
		assert.Equal(t, "884213", r.Extract(p))
	})

	t.Run("falls_back_to_first_standalone", func(t *testing.T) {
		p := page("884213", "no signature box")
		assert.Equal(t, "884213", r.Extract(p))
	})

	t.Run("last_resort_substring_inside_a_line", func(t *testing.T) {
		p := page("TICKET 884213 COPY", "no signature box", "no standalone number")
		assert.Equal(t, "884213", r.Extract(p))
	})

	t.Run("empty_when_absent", func(t *testing.T) {
		assert.Equal(t, "", r.Extract(page("nothing", "01")))
	})
}

func TestFirstNonEmpty(t *testing.T) {
	r := extract.FirstNonEmpty{
		extract.FirstLineAfterLabel{Label: "JOB"},
		extract.FirstDateOnPage{},
	}
	assert.Equal(t, "Riverside Phase 2", r.Extract(page("JOB", "Riverside Phase 2", "10/01/25")))
	assert.Equal(t, "10/01/25", r.Extract(page("no label", "10/01/25")))
	assert.Equal(t, "", r.Extract(page("nothing")))
}

func TestUppercaseLine(t *testing.T) {
	r := extract.UppercaseLine{
		MinLen:  3,
		MaxLen:  30,
		Exclude: []string{"MISSOULA", "LANDFILL", "SIGNATURE", "WEIGHT"},
	}

	t.Run("first_clean_uppercase_line", func(t *testing.T) {
		p := page("MISSOULA LANDFILL", "Customer Copy", "HWY 93 PIT", "SIGNATURE")
		assert.Equal(t, "HWY 93 PIT", r.Extract(p))
	})

	t.Run("mixed_case_and_excluded_lines_skipped", func(t *testing.T) {
		p := page("Grant Creek Site", "NET WEIGHT 18300")
		assert.Equal(t, "", r.Extract(p))
	})

	t.Run("length_bounds", func(t *testing.T) {
		assert.Equal(t, "", r.Extract(page("AB", "THIS UPPERCASE LINE RUNS PAST THIRTY")))
	})
}

func TestAfterNthDate(t *testing.T) {
	r := extract.AfterNthDate{
		N:         2,
		Window:    6,
		SkipWords: []string{"GROSS", "TARE", "NET", "WEIGHT", "SCALE", "INBOUND"},
	}

	t.Run("job_after_second_date", func(t *testing.T) {
		p := page(
			"Inbound 10/01/25",
			"GROSS 42100",
			"Outbound 10/01/25",
			"01",
			"NET WEIGHT 18300",
			"Grant Creek Site",
		)
		assert.Equal(t, "Grant Creek Site", r.Extract(p))
	})

	t.Run("empty_with_one_date", func(t *testing.T) {
		assert.Equal(t, "", r.Extract(page("10/01/25", "Grant Creek Site")))
	})
}

func TestFieldRulesAreTotal(t *testing.T) {
	rules := []extract.FieldRule{
		extract.NewAnchoredRegex(`Invoice\s*#\s*\n\s*([A-Z0-9]+)`, 1),
		extract.FirstLineAfterLabel{Label: "JOB"},
		extract.LastLineBeforeLabel{Label: "ORIGINAL", Direction: extract.ScanBackward},
		extract.NewMaxNumericMatch(""),
		extract.NewLastNumericMatch(""),
		extract.FirstLineMatching{Match: extract.IsDecimalNumber},
		extract.FirstDateOnPage{},
		extract.CodeNearLabel{Label: "X", Window: 2, Shape: extract.DigitRun(6, 7)},
		extract.AfterNthDate{N: 2, Window: 3},
	}
	pages := []extract.Page{
		page(),
		page(""),
		page("�", "$", "////", "0000000000000000000"),
	}
	for _, r := range rules {
		for _, p := range pages {
			require.NotPanics(t, func() { _ = r.Extract(p) })
		}
	}
}
