package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerificationResult_Summary(t *testing.T) {
	e := Entity{Type: EntityCompanyName, Value: "Acme Corp"}
	m := ModifiedEntity{Original: e, Modified: "Acme"}

	tests := []struct {
		name   string
		result VerificationResult
		want   string
	}{
		{"clean", VerificationResult{Preserved: true}, "All critical details were preserved"},
		{"modified only", VerificationResult{Preserved: true, ModifiedEntities: []ModifiedEntity{m, m}}, "2 details may have been modified"},
		{"missing only", VerificationResult{MissingEntities: []Entity{e}}, "1 critical details may have been lost"},
		{"both", VerificationResult{MissingEntities: []Entity{e, e, e}, ModifiedEntities: []ModifiedEntity{m}},
			"1 details may have been modified / 3 critical details may have been lost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Summary())
		})
	}
}
