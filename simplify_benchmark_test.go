// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package schemalite

import (
	"testing"
)

// BenchmarkDecodeSchema measures ordered schema decoding cost.
func BenchmarkDecodeSchema(b *testing.B) {
	schemaBytes := readFixture(b)

	b.ReportAllocs()
	b.SetBytes(int64(len(schemaBytes)))

	for i := 0; i < b.N; i++ {
		if _, err := DecodeSchema(schemaBytes); err != nil {
			b.Fatalf("DecodeSchema: %v", err)
		}
	}
}

// BenchmarkSimplifyCompact measures full conversion flow for compact notation.
func BenchmarkSimplifyCompact(b *testing.B) {
	benchmarkSimplify(b, NotationCompact)
}

// BenchmarkSimplifyInterface measures full conversion flow for interface notation.
func BenchmarkSimplifyInterface(b *testing.B) {
	benchmarkSimplify(b, NotationInterface)
}

// BenchmarkSimplifyKeyTyped measures full conversion flow for key-typed notation.
func BenchmarkSimplifyKeyTyped(b *testing.B) {
	benchmarkSimplify(b, NotationKeyTyped)
}

// BenchmarkLoadsRepair measures lenient loading of truncated model output.
func BenchmarkLoadsRepair(b *testing.B) {
	text := `{'items': [{id: 1, name: 'a'}, {id: 2, name: 'b',}], 'ok': True, "tail": [1, 2`

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Loads(text, LoadOptions{}); err != nil {
			b.Fatalf("Loads: %v", err)
		}
	}
}

// benchmarkSimplify runs in-memory conversion and rendering for notation.
func benchmarkSimplify(b *testing.B, notation Notation) {
	schemaBytes := readFixture(b)
	options := Options{Notation: notation}

	b.ReportAllocs()
	b.SetBytes(int64(len(schemaBytes)))

	for i := 0; i < b.N; i++ {
		result, err := Simplify(schemaBytes, options)
		if err != nil {
			b.Fatalf("Simplify: %v", err)
		}

		_ = result.String()
	}
}
