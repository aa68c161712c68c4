package collect_test

import (
	"reflect"
	"testing"

	"github.com/reoring/typeforge/internal/collect"
)

func TestDedupe(t *testing.T) {
	got := collect.Dedupe([]string{"a", "b", "a", "c", "b"}, func(s string) string { return s })
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("Dedupe = %v", got)
	}
	if got := collect.Dedupe(nil, func(s string) string { return s }); len(got) != 0 {
		t.Fatalf("empty input: %v", got)
	}
}

func TestFlatten(t *testing.T) {
	got := collect.Flatten([][]int{{1, 2}, nil, {3}})
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("Flatten = %v", got)
	}
}

func TestGroupBy(t *testing.T) {
	got := collect.GroupBy([]int{1, 2, 3, 4, 5}, func(n int) bool { return n%2 == 0 })
	if !reflect.DeepEqual(got[true], []int{2, 4}) || !reflect.DeepEqual(got[false], []int{1, 3, 5}) {
		t.Fatalf("GroupBy = %v", got)
	}
}

func TestPartition(t *testing.T) {
	yes, no := collect.Partition([]string{"a.yaml", "b.json", "c.yml"}, func(s string) bool {
		return s[len(s)-4:] == "json"
	})
	if !reflect.DeepEqual(yes, []string{"b.json"}) || !reflect.DeepEqual(no, []string{"a.yaml", "c.yml"}) {
		t.Fatalf("Partition = %v / %v", yes, no)
	}
}
