package rules

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMarshal_CanonicalForm(t *testing.T) {
	tree := NewRoot("RootObject", false, []*RuleNode{
		Terminal("EMPLOYEEID", "employeeId", "employeeId", false),
	})

	data, err := Marshal(tree)
	require.NoError(t, err)

	expected := `{
  "propID": "RootObject",
  "sourceLocation": "$",
  "targetLocation": "$",
  "isArray": false,
  "items": [
    {
      "propID": "EMPLOYEEID",
      "sourceLocation": "employeeId",
      "targetLocation": "employeeId",
      "isArray": false,
      "items": null
    }
  ]
}`
	assert.Equal(t, expected, string(data))
}

func TestMarshal_EmptyItemsRenderNull(t *testing.T) {
	n := &RuleNode{PropID: "X", SourceLocation: "a", TargetLocation: "b", Items: []*RuleNode{}}

	data, err := Marshal(n)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"items": null`)
	assert.NotContains(t, string(data), `[]`)
	assert.NotNil(t, n.Items, "Marshal must not modify its input")
}

func TestMarshal_CustomLogicAfterItemsWithoutEscaping(t *testing.T) {
	n := Terminal("TOTAL", Expression("price > 0 && qty"), "total", false)
	n.CustomLogic = "price > 0 && qty"

	data, err := Marshal(n)
	require.NoError(t, err)

	expected := `{
  "propID": "TOTAL",
  "sourceLocation": "EXPRESSION: price > 0 && qty",
  "targetLocation": "total",
  "isArray": false,
  "items": null,
  "customLogic": "price > 0 && qty"
}`
	assert.Equal(t, expected, string(data))
}

func TestMarshal_Nil(t *testing.T) {
	_, err := Marshal(nil)
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = MarshalSet(nil)
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = MarshalSet(&RuleSet{ConversionRules: []*RuleNode{nil}})
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestMarshalSet(t *testing.T) {
	set := NewRuleSet(ContentTypeJSON, ContentTypeJSON, NewRoot("RootArray", true, nil))

	data, err := MarshalSet(set)
	require.NoError(t, err)

	expected := `{
  "sourceContentType": "application/json",
  "targetContentType": "application/json",
  "conversionRules": [
    {
      "propID": "RootArray",
      "sourceLocation": "$",
      "targetLocation": "$",
      "isArray": true,
      "items": null
    }
  ]
}`
	assert.Equal(t, expected, string(data))
}

func TestUnmarshal_EmptyArrayItemsBecomeNil(t *testing.T) {
	n, err := Unmarshal([]byte(`{"propID":"X","sourceLocation":"a","targetLocation":"b","isArray":false,"items":[]}`))
	require.NoError(t, err)
	assert.Nil(t, n.Items)
}

func TestUnmarshal_Malformed(t *testing.T) {
	_, err := Unmarshal([]byte(`{"propID":`))
	assert.Error(t, err)

	_, err = UnmarshalSet([]byte(`{"conversionRules":[null]}`))
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestRoundTrip_Sample(t *testing.T) {
	set := NewRuleSet(ContentTypeJSON, ContentTypeYAML, sampleTree(), NewRoot("RootObject", false, nil))

	data, err := MarshalSet(set)
	require.NoError(t, err)

	back, err := UnmarshalSet(data)
	require.NoError(t, err)
	assert.True(t, set.Equal(back), "round trip changed the tree:\n%s", spew.Sdump(back))
}

func genRule(depth int) *rapid.Generator[*RuleNode] {
	return rapid.Custom(func(t *rapid.T) *RuleNode {
		n := &RuleNode{
			PropID:         rapid.String().Draw(t, "propID"),
			SourceLocation: rapid.String().Draw(t, "source"),
			TargetLocation: rapid.String().Draw(t, "target"),
			IsArray:        rapid.Bool().Draw(t, "isArray"),
			CustomLogic:    rapid.String().Draw(t, "customLogic"),
		}

		if depth > 0 {
			n.Items = rapid.SliceOfN(genRule(depth-1), 0, 3).Draw(t, "items")
		}

		return n
	})
}

func TestRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genRule(3).Draw(t, "tree")

		data, err := Marshal(tree)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		back, err := Unmarshal(data)
		if err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		if !tree.Equal(back) {
			t.Fatalf("round trip mismatch (-want +got):\n%s", cmp.Diff(tree, back, cmpopts.EquateEmpty()))
		}

		again, err := Marshal(back)
		if err != nil {
			t.Fatalf("marshal again: %v", err)
		}

		if string(again) != string(data) {
			t.Fatalf("serialization is not stable:\n%s\n---\n%s", data, again)
		}
	})
}
