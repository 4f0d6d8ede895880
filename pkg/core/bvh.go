package core

import (
	"sort"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox AABB
	Left        *BVHNode
	Right       *BVHNode
	Items       []int // Item indices for leaf nodes (nil for internal nodes)
}

// BVH is a Bounding Volume Hierarchy over a fixed set of boxes. It reports
// candidate items whose boxes a ray crosses; callers run the exact test.
type BVH struct {
	Root  *BVHNode
	boxes []AABB
}

// Leaf threshold: if we have this many or fewer items, store them in a leaf node
const leafThreshold = 8

// NewBVH constructs a BVH over boxes; item i is boxes[i]
func NewBVH(boxes []AABB) *BVH {
	if len(boxes) == 0 {
		return &BVH{Root: nil}
	}

	items := make([]int, len(boxes))
	for i := range items {
		items[i] = i
	}

	bvh := &BVH{boxes: boxes}
	bvh.Root = bvh.build(items)
	return bvh
}

// build recursively splits items at the median of the longest axis
func (bvh *BVH) build(items []int) *BVHNode {
	boundingBox := bvh.boxes[items[0]]
	for _, i := range items[1:] {
		boundingBox = boundingBox.Union(bvh.boxes[i])
	}

	if len(items) <= leafThreshold {
		return &BVHNode{BoundingBox: boundingBox, Items: items}
	}

	axis := boundingBox.LongestAxis()
	sort.Slice(items, func(a, b int) bool {
		return bvh.boxes[items[a]].Center().Component(axis) < bvh.boxes[items[b]].Center().Component(axis)
	})

	mid := len(items) / 2
	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        bvh.build(items[:mid]),
		Right:       bvh.build(items[mid:]),
	}
}

// Visit calls fn with every item whose box the ray crosses within [tMin, tMax]
func (bvh *BVH) Visit(ray Ray, tMin, tMax float64, fn func(item int)) {
	if bvh.Root == nil {
		return
	}
	bvh.visitNode(bvh.Root, ray, tMin, tMax, fn)
}

func (bvh *BVH) visitNode(node *BVHNode, ray Ray, tMin, tMax float64, fn func(item int)) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return
	}

	if node.Items != nil {
		for _, item := range node.Items {
			if bvh.boxes[item].Hit(ray, tMin, tMax) {
				fn(item)
			}
		}
		return
	}

	if node.Left != nil {
		bvh.visitNode(node.Left, ray, tMin, tMax, fn)
	}
	if node.Right != nil {
		bvh.visitNode(node.Right, ray, tMin, tMax, fn)
	}
}

// Len returns the number of items in the hierarchy
func (bvh *BVH) Len() int {
	return len(bvh.boxes)
}

// Stats walks the hierarchy and summarises its shape
func (bvh *BVH) Stats() BVHStats {
	if bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	bvh.collectStats(bvh.Root, 0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
	AvgDepth   float64
	TotalItems int
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.Items != nil {
		stats.LeafNodes++
		stats.TotalItems += len(node.Items)
		stats.AvgDepth += float64(depth)
		return
	}

	if node.Left != nil {
		bvh.collectStats(node.Left, depth+1, stats)
	}
	if node.Right != nil {
		bvh.collectStats(node.Right, depth+1, stats)
	}
}
