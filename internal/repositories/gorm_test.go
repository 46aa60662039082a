package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestTranslateContention(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"deadlock", &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}, ErrConflict},
		{"lock wait timeout", &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}, ErrConflict},
		{"wrapped deadlock", fmt.Errorf("commit: %w", &mysql.MySQLError{Number: 1213}), ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateContention(tt.err), tt.want)
		})
	}
}

func TestTranslateContention_Passthrough(t *testing.T) {
	assert.NoError(t, translateContention(nil))

	duplicate := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	assert.Equal(t, error(duplicate), translateContention(duplicate))

	plain := errors.New("connection refused")
	assert.Equal(t, plain, translateContention(plain))
}
