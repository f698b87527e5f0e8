package osc

import (
	"testing"
	"time"
)

func TestTimetagRoundTrip(t *testing.T) {
	now := time.Unix(1725100000, 123456789)

	tag := NewTimetagFromTime(now)
	if got := tag.Time(); !got.Equal(now) {
		t.Errorf("Time() = %v, want %v", got, now)
	}
}

func TestTimetagFields(t *testing.T) {
	now := time.Unix(1725100000, 42)
	tag := NewTimetagFromTime(now)

	if got, want := tag.SecondsSinceEpoch(), uint32(1725100000+secondsFrom1900To1970); got != want {
		t.Errorf("SecondsSinceEpoch() = %d, want %d", got, want)
	}
	if got, want := tag.FractionalSecond(), uint32(42); got != want {
		t.Errorf("FractionalSecond() = %d, want %d", got, want)
	}
}

func TestTimetagExpiresIn(t *testing.T) {
	if d := TimetagImmediate.ExpiresIn(); d != 0 {
		t.Errorf("immediate ExpiresIn() = %v, want 0", d)
	}

	past := NewTimetagFromTime(time.Now().Add(-time.Hour))
	if d := past.ExpiresIn(); d != 0 {
		t.Errorf("past ExpiresIn() = %v, want 0", d)
	}

	future := NewTimetagFromTime(time.Now().Add(time.Hour))
	if d := future.ExpiresIn(); d <= 0 || d > time.Hour {
		t.Errorf("future ExpiresIn() = %v, want within (0, 1h]", d)
	}
}

func TestTimetagMarshalBinary(t *testing.T) {
	b, err := Timetag(1).MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0, 0, 0, 0, 0, 0, 0, 1}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("MarshalBinary() = %v, want %v", b, want)
		}
	}
}

func TestTimetagSetTime(t *testing.T) {
	var tag Timetag
	now := time.Unix(1725100000, 0)
	tag.SetTime(now)
	if !tag.Time().Equal(now) {
		t.Errorf("SetTime round trip = %v, want %v", tag.Time(), now)
	}
}
