//-------------------------------------------------------------------------
//
// FlexiMart Data Platform
//
// Copyright (c) 2025 - 2026, FlexiMart
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"testing"
)

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	if f1 == nil || f1.faker == nil {
		t.Fatal("NewFakerWithSeed returned an uninitialized Faker")
	}

	// Same seed should produce same sequence
	for i := 0; i < 10; i++ {
		v1 := f1.Int(0, 1000)
		v2 := f2.Int(0, 1000)
		if v1 != v2 {
			t.Errorf("Same seed produced different values: %d != %d", v1, v2)
		}
	}
}

func TestFakerInt(t *testing.T) {
	f := NewFakerWithSeed(1)
	for i := 0; i < 100; i++ {
		v := f.Int(5, 10)
		if v < 5 || v > 10 {
			t.Errorf("Int(5, 10) = %d, out of range", v)
		}
	}
}

func TestChoose(t *testing.T) {
	f := NewFakerWithSeed(1)
	items := []string{"a", "b", "c"}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		v := Choose(f, items)
		seen[v] = true
	}
	for _, item := range items {
		if !seen[item] {
			t.Errorf("Choose never returned %q in 100 draws", item)
		}
	}
}

func TestChooseEmpty(t *testing.T) {
	f := NewFakerWithSeed(1)
	if v := Choose(f, []string{}); v != "" {
		t.Errorf("Choose on empty slice = %q, want zero value", v)
	}
}

func TestChooseWeighted(t *testing.T) {
	f := NewFakerWithSeed(1)
	items := []int{1, 2}
	weights := []int{99, 1}

	counts := map[int]int{}
	for i := 0; i < 1000; i++ {
		counts[ChooseWeighted(f, items, weights)]++
	}
	if counts[1] <= counts[2] {
		t.Errorf("heavily weighted item drawn %d times vs %d", counts[1], counts[2])
	}
}

func TestChooseWeightedEmpty(t *testing.T) {
	f := NewFakerWithSeed(1)
	if v := ChooseWeighted(f, []int{}, []int{}); v != 0 {
		t.Errorf("ChooseWeighted on empty slice = %d, want zero value", v)
	}
}
