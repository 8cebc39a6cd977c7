package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "mysql duplicate entry",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'R1' for key 'uq_payment_events_reference'"},
			want: true,
		},
		{
			name: "wrapped mysql duplicate entry",
			err:  fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062}),
			want: true,
		},
		{name: "gorm translated duplicate", err: gorm.ErrDuplicatedKey, want: true},
		{name: "other mysql error", err: &mysql.MySQLError{Number: 1213, Message: "Deadlock found"}, want: false},
		{name: "plain error", err: errors.New("connection reset"), want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isDuplicateKey(tc.err))
		})
	}
}
