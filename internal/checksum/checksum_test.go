package checksum

import "testing"

func toUint32(ints []int) []uint32 {
	out := make([]uint32, len(ints))
	for i, v := range ints {
		out[i] = uint32(v)
	}
	return out
}

func TestInvalidatesChecksums(t *testing.T) {
	lists := [][]int{
		{366, 297, 2047},
		{1384, 1143, 803, 1671, 789, 2046},
		{979, 1121, 205, 531, 441, 187, 585, 12, 2046},
		{1993, 2044, 7, 1991, 1948, 1948, 973, 1893, 1438, 414, 1429, 2046},
		{1947, 789, 1517, 704, 1971, 1615, 502, 1720, 1704, 1086, 1550, 883, 1447, 929, 2046},
		{388, 1081, 652, 1498, 1177, 1022, 302, 1762, 335, 1903, 1238, 1348, 649, 65, 1380, 769, 742, 2046},
		{1760, 91, 1106, 217, 415, 922, 1718, 710, 841, 232, 583, 1910, 1814, 830, 1408, 642, 222, 1089, 928, 1936, 958, 284, 800, 2046},
	}
	for _, list := range lists {
		words := toUint32(list)
		f := New(len(words))
		if f.Valid(words) {
			t.Fatalf("expected invalid checksum for %v", list)
		}
	}
}

func TestValidatesChecksums(t *testing.T) {
	lists := [][]int{
		{779, 505, 1435},
		{1384, 1143, 803, 1671, 789, 1037},
		{1087, 612, 665, 659, 1526, 1322, 1703, 1695, 828},
		{1993, 2044, 7, 1991, 1948, 1948, 973, 1893, 1438, 414, 1429, 1554},
		{1947, 789, 1517, 704, 1971, 1615, 502, 1720, 1704, 1086, 1550, 883, 1447, 929, 1270},
		{388, 1081, 652, 1498, 1177, 1022, 302, 1762, 335, 1903, 1238, 1348, 649, 65, 1380, 769, 742, 1612},
		{1760, 91, 1106, 217, 415, 922, 1718, 710, 841, 232, 583, 1910, 1814, 830, 1408, 642, 222, 1089, 928, 1936, 958, 284, 800, 189},
	}
	for _, list := range lists {
		words := toUint32(list)
		f := New(len(words))
		if !f.Valid(words) {
			t.Fatalf("expected valid checksum for %v", list)
		}
	}
}

func TestCharOffset(t *testing.T) {
	if got := CharOffset(0, 5); got != 53 {
		t.Fatalf("CharOffset(0,5) = %d, want 53", got)
	}
}
