package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, Map([]int{1, 2, 3}, strconv.Itoa))
	assert.Empty(t, Map([]int{}, strconv.Itoa))
}

func TestFilter(t *testing.T) {
	even := func(i int) bool { return i%2 == 0 }

	assert.Equal(t, []int{2, 4}, Filter([]int{1, 2, 3, 4, 5}, even))
	assert.Empty(t, Filter([]int{1, 3}, even))
}

func TestGenMap(t *testing.T) {
	result := GenMap([]string{"mip", "mie", "mtvec"}, func(s string) int { return len(s) })

	assert.Equal(t, map[int]string{3: "mie", 5: "mtvec"}, result)
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"c", "go", "rust"}, SortedKeys(map[string]int{"rust": 1, "go": 2, "c": 3}))
}
