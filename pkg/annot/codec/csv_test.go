package codec

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, testStore(t)); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 2 spans + 1 span + 1 empty-span row
	if len(rows) != 5 {
		t.Fatalf("Expected 5 rows, got %d", len(rows))
	}
	header := []string{"id", "text", "start", "end", "label"}
	for i, h := range header {
		if rows[0][i] != h {
			t.Fatalf("Unexpected header %v", rows[0])
		}
	}
	if rows[1][2] != "16" || rows[1][3] != "23" || rows[1][4] != "ORG" {
		t.Errorf("Unexpected first span row: %v", rows[1])
	}

	last := rows[len(rows)-1]
	if last[1] != "nothing to see here" {
		t.Errorf("Expected the span-less document last, got %v", last)
	}
	if last[2] != "" || last[3] != "" || last[4] != "" {
		t.Errorf("Span-less document should emit empty span fields, got %v", last)
	}
}
