package web

import "testing"

func Test_validateNickname(t *testing.T) {
	tests := []struct {
		name     string
		nickname string
		wantErr  bool
	}{
		{name: "ok", nickname: "alice"},
		{name: "with digits", nickname: "alice42"},
		{name: "with underscore", nickname: "alice_b"},
		{name: "empty", nickname: "", wantErr: true},
		{name: "starts with digit", nickname: "1alice", wantErr: true},
		{name: "spaces", nickname: "a lice", wantErr: true},
		{name: "non-latin", nickname: "алиса", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := validateNickname(tt.nickname); (err != nil) != tt.wantErr {
				t.Errorf("validateNickname() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_scaleRegexp(t *testing.T) {
	tests := []struct {
		name  string
		scale string
		want  bool
	}{
		{name: "quarter", scale: "1/144", want: true},
		{name: "master grade", scale: "1/100", want: true},
		{name: "empty", scale: ""},
		{name: "word", scale: "big"},
		{name: "missing denominator", scale: "1/"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := scaleRegexp.MatchString(tt.scale); got != tt.want {
				t.Errorf("scaleRegexp.MatchString() = %v, want %v", got, tt.want)
			}
		})
	}
}
