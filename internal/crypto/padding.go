// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/subtle"
)

// pad applies PKCS#7 padding. A full block of padding is appended when
// len(data) is already a multiple of blockSize.
func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize

	padded := make([]byte, len(data), len(data)+n)
	copy(padded, data)
	return append(padded, bytes.Repeat([]byte{byte(n)}, n)...)
}

// unpad validates and strips PKCS#7 padding.
//
// The last blockSize bytes are always inspected regardless of the claimed
// padding length, and every failure yields ErrPaddingValidationFailed.
func unpad(data []byte, blockSize int) ([]byte, error) {
	n := len(data)
	if n == 0 || n%blockSize != 0 {
		return nil, ErrPaddingValidationFailed
	}

	padLen := int(data[n-1])
	good := subtle.ConstantTimeLessOrEq(1, padLen) & subtle.ConstantTimeLessOrEq(padLen, blockSize)

	for i := 1; i <= blockSize; i++ {
		inPadding := subtle.ConstantTimeLessOrEq(i, padLen)
		matches := subtle.ConstantTimeByteEq(data[n-i], byte(padLen))
		good &= subtle.ConstantTimeSelect(inPadding, matches, 1)
	}

	if good != 1 {
		return nil, ErrPaddingValidationFailed
	}

	return data[:n-padLen], nil
}
