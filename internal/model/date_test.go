package model

import (
	"encoding/json"
	"testing"
)

func TestDateUnmarshalLayouts(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"date only", `"2026-07-15"`, "2026-07-15"},
		{"datetime", `"2026-07-15T10:30:00"`, "2026-07-15"},
		{"with nanos", `"2026-07-15T10:30:00.123456"`, "2026-07-15"},
		{"rfc3339", `"2026-07-15T10:30:00Z"`, "2026-07-15"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			if err := json.Unmarshal([]byte(tc.in), &d); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if got := d.Format("2006-01-02"); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDateUnmarshalEmpty(t *testing.T) {
	for _, in := range []string{`""`, `null`} {
		var d Date
		if err := json.Unmarshal([]byte(in), &d); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if !d.IsZero() {
			t.Errorf("%s should yield the zero date, got %v", in, d)
		}
	}
}

func TestDateMarshal(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2026-07-15T10:30:00"`), &d); err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2026-07-15"` {
		t.Errorf("marshal = %s, want \"2026-07-15\"", b)
	}

	var zero Date
	b, err = json.Marshal(zero)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "null" {
		t.Errorf("zero date marshal = %s, want null", b)
	}
}

func TestNotificationLink(t *testing.T) {
	cases := []struct {
		entity EntityType
		want   string
	}{
		{EntityFee, "/fees"},
		{EntityHousehold, "/households"},
		{EntityPayment, "/payments"},
		{EntityType("UNKNOWN"), ""},
	}

	for _, tc := range cases {
		n := Notification{EntityType: tc.entity}
		if got := n.Link(); got != tc.want {
			t.Errorf("Link(%s) = %q, want %q", tc.entity, got, tc.want)
		}
	}
}
