// FILE: internal/entity/credit_entity_test.go
package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreditAccountUnlimited(t *testing.T) {
	tests := []struct {
		name    string
		account CreditAccount
		want    bool
	}{
		{"regular balance", CreditAccount{Balance: 10}, false},
		{"zero balance", CreditAccount{Balance: 0}, false},
		{"admin flag", CreditAccount{Balance: 0, Admin: true}, true},
		{"negative sentinel", CreditAccount{Balance: -1}, true},
		{"threshold sentinel", CreditAccount{Balance: UnlimitedThreshold}, true},
		{"above threshold", CreditAccount{Balance: UnlimitedThreshold + 500}, true},
		{"just below threshold", CreditAccount{Balance: UnlimitedThreshold - 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.account.Unlimited())
		})
	}
}

func TestCreditAccountHasEnough(t *testing.T) {
	assert.True(t, CreditAccount{Balance: 5}.HasEnough(5))
	assert.False(t, CreditAccount{Balance: 4}.HasEnough(5))
	assert.True(t, CreditAccount{Balance: 0, Admin: true}.HasEnough(1000000))
	assert.True(t, CreditAccount{Balance: -1}.HasEnough(1000000))
}
