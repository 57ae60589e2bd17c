package common

import "testing"

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	b := []byte("correct horse")
	WipeByteArray(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %v", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}
