package sgf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sgferrors "sgfkit/internal/errors"
)

type links struct {
	parent, firstChild, nextSibling *Node
}

// snapshot фиксирует связи всех переданных узлов.
func snapshot(nodes ...*Node) map[*Node]links {
	result := make(map[*Node]links, len(nodes))
	for _, n := range nodes {
		result[n] = links{parent: n.parent, firstChild: n.firstChild, nextSibling: n.nextSibling}
	}
	return result
}

// chain строит root -> nodes[1] -> nodes[2] ... цепочкой первых детей.
func chain(t *testing.T, n int) []*Node {
	t.Helper()
	b := NewTreeBuilder()
	nodes := make([]*Node, n)
	for i := range nodes {
		nodes[i] = NewNode()
		if i > 0 {
			require.NoError(t, b.AppendChild(nodes[i-1], nodes[i]))
		}
	}
	return nodes
}

// fork строит root с детьми a, b, c.
func fork(t *testing.T) (root, a, b, c *Node) {
	t.Helper()
	builder := NewTreeBuilder()
	root, a, b, c = NewNode(), NewNode(), NewNode(), NewNode()
	for _, child := range []*Node{a, b, c} {
		require.NoError(t, builder.AppendChild(root, child))
	}
	return root, a, b, c
}

func TestRemoveChildMovesSubtree(t *testing.T) {
	t.Parallel()

	nodes := chain(t, 4)
	root, a, b, c := nodes[0], nodes[1], nodes[2], nodes[3]

	require.NoError(t, NewTreeBuilder().RemoveChild(a, b))

	assert.False(t, a.HasChildren())
	assert.False(t, b.HasParent())
	assert.Same(t, b, c.Parent())
	assert.Same(t, c, b.FirstChild())
	assert.Same(t, root, a.Root())
	assert.Same(t, b, c.Root())
}

func TestRejectedOperationsLeaveTreeUnchanged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		op      func(b *TreeBuilder, nodes []*Node) error
		wantErr error
	}{
		{
			name:    "append node to itself",
			op:      func(b *TreeBuilder, n []*Node) error { return b.AppendChild(n[1], n[1]) },
			wantErr: sgferrors.ErrCycle,
		},
		{
			name:    "append ancestor to descendant",
			op:      func(b *TreeBuilder, n []*Node) error { return b.AppendChild(n[3], n[0]) },
			wantErr: sgferrors.ErrCycle,
		},
		{
			name:    "set first child to ancestor",
			op:      func(b *TreeBuilder, n []*Node) error { return b.SetFirstChild(n[2], n[1]) },
			wantErr: sgferrors.ErrCycle,
		},
		{
			name:    "insert before non-child",
			op:      func(b *TreeBuilder, n []*Node) error { return b.InsertChild(n[0], NewNode(), n[2]) },
			wantErr: sgferrors.ErrNotChild,
		},
		{
			name:    "remove non-child",
			op:      func(b *TreeBuilder, n []*Node) error { return b.RemoveChild(n[0], n[2]) },
			wantErr: sgferrors.ErrNotChild,
		},
		{
			name:    "replace non-child",
			op:      func(b *TreeBuilder, n []*Node) error { return b.ReplaceChild(n[0], NewNode(), n[3]) },
			wantErr: sgferrors.ErrNotChild,
		},
		{
			name:    "replace child with ancestor",
			op:      func(b *TreeBuilder, n []*Node) error { return b.ReplaceChild(n[2], n[0], n[3]) },
			wantErr: sgferrors.ErrCycle,
		},
		{
			name:    "sibling of root",
			op:      func(b *TreeBuilder, n []*Node) error { return b.SetNextSibling(n[0], NewNode()) },
			wantErr: sgferrors.ErrNoParent,
		},
		{
			name:    "sibling is ancestor",
			op:      func(b *TreeBuilder, n []*Node) error { return b.SetNextSibling(n[3], n[1]) },
			wantErr: sgferrors.ErrCycle,
		},
		{
			name:    "parent is descendant",
			op:      func(b *TreeBuilder, n []*Node) error { return b.SetParent(n[1], n[3]) },
			wantErr: sgferrors.ErrCycle,
		},
		{
			name:    "nil child",
			op:      func(b *TreeBuilder, n []*Node) error { return b.AppendChild(n[0], nil) },
			wantErr: sgferrors.ErrInvalidArgument,
		},
		{
			name:    "nil node",
			op:      func(b *TreeBuilder, n []*Node) error { return b.SetFirstChild(nil, n[1]) },
			wantErr: sgferrors.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			nodes := chain(t, 4)
			before := snapshot(nodes...)

			err := tt.op(NewTreeBuilder(), nodes)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, sgferrors.ErrPreconditionViolated)
			assert.True(t, IsPreconditionViolation(err))
			assert.Equal(t, before, snapshot(nodes...))
		})
	}
}

func TestSetFirstChildNoneOrphansAllChildren(t *testing.T) {
	t.Parallel()

	root, a, b, c := fork(t)
	require.NoError(t, NewTreeBuilder().SetFirstChild(root, nil))

	assert.False(t, root.HasChildren())
	for _, child := range []*Node{a, b, c} {
		assert.False(t, child.HasParent())
		assert.False(t, child.HasNextSibling())
		assert.False(t, child.HasPreviousSibling())
	}
}

func TestSetFirstChildReplacesChain(t *testing.T) {
	t.Parallel()

	root, a, b, c := fork(t)
	other := NewNode()
	require.NoError(t, NewTreeBuilder().SetFirstChild(root, other))

	assert.Equal(t, []*Node{other}, root.Children())
	assert.Same(t, root, other.Parent())
	for _, child := range []*Node{a, b, c} {
		assert.True(t, child.IsRoot())
	}
}

func TestSetFirstChildWithLaterSibling(t *testing.T) {
	t.Parallel()

	root, a, b, c := fork(t)
	require.NoError(t, NewTreeBuilder().SetFirstChild(root, c))

	assert.Equal(t, []*Node{c}, root.Children())
	assert.False(t, c.HasNextSibling())
	assert.True(t, a.IsRoot())
	assert.True(t, b.IsRoot())
}

func TestAppendChildEqualsInsertChildWithoutReference(t *testing.T) {
	t.Parallel()

	build := func(insert bool) []*Node {
		b := NewTreeBuilder()
		root, x, y, z := NewNode(), NewNode(), NewNode(), NewNode()
		for _, child := range []*Node{x, y, z} {
			var err error
			if insert {
				err = b.InsertChild(root, child, nil)
			} else {
				err = b.AppendChild(root, child)
			}
			require.NoError(t, err)
		}
		return []*Node{root, x, y, z}
	}

	appended, inserted := build(false), build(true)
	for i := range appended {
		index := func(nodes []*Node, n *Node) int {
			for j, candidate := range nodes {
				if candidate == n {
					return j
				}
			}
			return -1
		}
		assert.Equal(t, index(appended, appended[i].Parent()), index(inserted, inserted[i].Parent()))
		assert.Equal(t, index(appended, appended[i].FirstChild()), index(inserted, inserted[i].FirstChild()))
		assert.Equal(t, index(appended, appended[i].NextSibling()), index(inserted, inserted[i].NextSibling()))
	}
}

func TestMoveToSamePositionIsNoOp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		op   func(b *TreeBuilder, root, a, bn, c *Node) error
	}{
		{"append last child", func(b *TreeBuilder, root, _, _, c *Node) error { return b.AppendChild(root, c) }},
		{"insert before own next sibling", func(b *TreeBuilder, root, a, bn, _ *Node) error { return b.InsertChild(root, a, bn) }},
		{"insert before itself", func(b *TreeBuilder, root, _, bn, _ *Node) error { return b.InsertChild(root, bn, bn) }},
		{"replace with itself", func(b *TreeBuilder, root, a, _, _ *Node) error { return b.ReplaceChild(root, a, a) }},
		{"set same parent", func(b *TreeBuilder, root, _, _, c *Node) error { return b.SetParent(c, root) }},
		{"set same next sibling", func(b *TreeBuilder, _, _, bn, c *Node) error { return b.SetNextSibling(bn, c) }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root, a, b, c := fork(t)
			before := snapshot(root, a, b, c)

			require.NoError(t, tt.op(NewTreeBuilder(), root, a, b, c))
			assert.Equal(t, before, snapshot(root, a, b, c))
		})
	}
}

func TestInsertChildMovesExistingChild(t *testing.T) {
	t.Parallel()

	root, a, b, c := fork(t)
	require.NoError(t, NewTreeBuilder().InsertChild(root, c, a))

	assert.Equal(t, []*Node{c, a, b}, root.Children())
	assert.Nil(t, b.NextSibling())
	assert.Same(t, c, a.PreviousSibling())
}

func TestAppendChildDetachesFromOldParent(t *testing.T) {
	t.Parallel()

	root, a, b, c := fork(t)
	other := NewNode()
	require.NoError(t, NewTreeBuilder().AppendChild(other, b))

	assert.Equal(t, []*Node{a, c}, root.Children())
	assert.Same(t, other, b.Parent())
	assert.False(t, b.HasNextSibling())
}

func TestReplaceChildKeepsPosition(t *testing.T) {
	t.Parallel()

	root, a, b, c := fork(t)
	replacement := NewNode()
	require.NoError(t, NewTreeBuilder().ReplaceChild(root, replacement, b))

	assert.Equal(t, []*Node{a, replacement, c}, root.Children())
	assert.True(t, b.IsRoot())
	assert.False(t, b.HasNextSibling())
}

func TestReplaceChildWithSibling(t *testing.T) {
	t.Parallel()

	root, a, b, c := fork(t)
	require.NoError(t, NewTreeBuilder().ReplaceChild(root, c, a))

	assert.Equal(t, []*Node{c, b}, root.Children())
	assert.True(t, a.IsRoot())
}

func TestSetNextSiblingReplacesRemainder(t *testing.T) {
	t.Parallel()

	root, a, b, c := fork(t)
	other := NewNode()
	require.NoError(t, NewTreeBuilder().SetNextSibling(a, other))

	assert.Equal(t, []*Node{a, other}, root.Children())
	assert.Same(t, root, other.Parent())
	assert.True(t, b.IsRoot())
	assert.True(t, c.IsRoot())
	assert.False(t, b.HasNextSibling())

	require.NoError(t, NewTreeBuilder().SetNextSibling(other, nil))
	assert.Equal(t, []*Node{a, other}, root.Children())
}

func TestSetParentNoneRemovesNode(t *testing.T) {
	t.Parallel()

	root, a, b, c := fork(t)
	require.NoError(t, NewTreeBuilder().SetParent(b, nil))

	assert.Equal(t, []*Node{a, c}, root.Children())
	assert.True(t, b.IsRoot())

	require.NoError(t, NewTreeBuilder().SetParent(b, nil))
}
