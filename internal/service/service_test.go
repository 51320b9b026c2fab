package service

import (
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/ilqareskerov/AccessDenied/internal/config"
	"github.com/ilqareskerov/AccessDenied/internal/repository"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	return NewService(repository.NewRepository(db), log, cfg), mock
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "whole", value: "100", want: "100.00"},
		{name: "two decimals", value: "10.50", want: "10.50"},
		{name: "one decimal", value: "10.5", want: "10.50"},
		{name: "empty", value: "", wantErr: true},
		{name: "not a number", value: "ten", wantErr: true},
		{name: "zero", value: "0", wantErr: true},
		{name: "negative", value: "-5.00", wantErr: true},
		{name: "three decimals", value: "1.234", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := parseAmount("amount", tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, amount.StringFixed(2))
		})
	}
}
