package sl_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/trading-bot-backend/internal/lib/sl"
)

func TestErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "plain error", err: errors.New("something went wrong"), want: "something went wrong"},
		{name: "nil error", err: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := sl.Err(tt.err)
			assert.Equal(t, "error", attr.Key)
			assert.Equal(t, slog.StringValue(tt.want), attr.Value)
		})
	}
}

func TestOpAndAccountID(t *testing.T) {
	op := sl.Op("account.Activate")
	assert.Equal(t, "op", op.Key)
	assert.Equal(t, "account.Activate", op.Value.String())

	id := sl.AccountID(42)
	assert.Equal(t, "account_id", id.Key)
	assert.Equal(t, int64(42), id.Value.Int64())
}
