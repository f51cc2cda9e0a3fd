package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kv(list []KeyValue, key string) (Property, bool) {
	for _, e := range list {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

func TestSplitCompoundPropertyMarginOneValue(t *testing.T) {
	r, err := SplitCompoundProperty("margin", "10px")
	if !assert.NoError(t, err) {
		return
	}
	for _, side := range []string{"top", "right", "bottom", "left"} {
		v, ok := kv(r, "margin-"+side)
		assert.True(t, ok)
		assert.Equal(t, Property("10px"), v)
	}
}

func TestSplitCompoundPropertyMarginTwoValues(t *testing.T) {
	r, err := SplitCompoundProperty("margin", "1px 2px")
	if !assert.NoError(t, err) {
		return
	}
	top, _ := kv(r, "margin-top")
	right, _ := kv(r, "margin-right")
	bottom, _ := kv(r, "margin-bottom")
	left, _ := kv(r, "margin-left")
	assert.Equal(t, Property("1px"), top)
	assert.Equal(t, Property("2px"), right)
	assert.Equal(t, Property("1px"), bottom)
	assert.Equal(t, Property("2px"), left)
}

func TestSplitCompoundPropertyMarginThreeValues(t *testing.T) {
	r, err := SplitCompoundProperty("margin", "1px 2px 3px")
	if !assert.NoError(t, err) {
		return
	}
	top, _ := kv(r, "margin-top")
	right, _ := kv(r, "margin-right")
	bottom, _ := kv(r, "margin-bottom")
	left, _ := kv(r, "margin-left")
	assert.Equal(t, Property("1px"), top)
	assert.Equal(t, Property("2px"), right)
	assert.Equal(t, Property("3px"), bottom)
	assert.Equal(t, Property("2px"), left)
}

func TestSplitCompoundPropertyMarginFourValues(t *testing.T) {
	r, err := SplitCompoundProperty("margin", "1px 2px 3px 4px")
	if !assert.NoError(t, err) {
		return
	}
	top, _ := kv(r, "margin-top")
	right, _ := kv(r, "margin-right")
	bottom, _ := kv(r, "margin-bottom")
	left, _ := kv(r, "margin-left")
	assert.Equal(t, Property("1px"), top)
	assert.Equal(t, Property("2px"), right)
	assert.Equal(t, Property("3px"), bottom)
	assert.Equal(t, Property("4px"), left)
}

func TestSplitCompoundPropertyRejectsInvalidComponent(t *testing.T) {
	r, err := SplitCompoundProperty("margin", "1px nonsense")
	assert.Error(t, err)
	assert.Nil(t, r)
}

func TestSplitCompoundPropertyPaddingFollowsSameRule(t *testing.T) {
	r, err := SplitCompoundProperty("padding", "5px 6px")
	if !assert.NoError(t, err) {
		return
	}
	top, _ := kv(r, "padding-top")
	left, _ := kv(r, "padding-left")
	assert.Equal(t, Property("5px"), top)
	assert.Equal(t, Property("6px"), left)
}

func TestSplitCompoundPropertyBorderWidthFollowsSameRule(t *testing.T) {
	r, err := SplitCompoundProperty("border-width", "1px 2px 3px 4px")
	if !assert.NoError(t, err) {
		return
	}
	top, _ := kv(r, "border-top-width")
	right, _ := kv(r, "border-right-width")
	bottom, _ := kv(r, "border-bottom-width")
	left, _ := kv(r, "border-left-width")
	assert.Equal(t, Property("1px"), top)
	assert.Equal(t, Property("2px"), right)
	assert.Equal(t, Property("3px"), bottom)
	assert.Equal(t, Property("4px"), left)
}

func TestSplitCompoundPropertyUnrecognizedKey(t *testing.T) {
	r, err := SplitCompoundProperty("not-a-shorthand", "1px")
	assert.Error(t, err)
	assert.Nil(t, r)
}

func TestIsCascadingMinimumSet(t *testing.T) {
	assert.True(t, IsCascading("color"))
	assert.True(t, IsCascading("font-size"))
	assert.False(t, IsCascading("margin"))
}
