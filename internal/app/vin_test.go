package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVIN(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "valid upper", in: "1FTEW1EP5NKD73911", want: "1FTEW1EP5NKD73911"},
		{name: "lowercase is upper-cased", in: "1ftew1ep5nkd73911", want: "1FTEW1EP5NKD73911"},
		{name: "surrounding whitespace stripped", in: "  1FTEW1EP5NKD73911\n", want: "1FTEW1EP5NKD73911"},
		{name: "16 characters", in: "1FTEW1EP5NKD7391", wantErr: true},
		{name: "18 characters", in: "1FTEW1EP5NKD739112", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "whitespace only", in: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeVIN(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidVIN)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
