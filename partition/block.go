// Package partition computes ownership and shape for block distributions of
// multi-dimensional array data over a processor grid. It is pure index
// arithmetic: no communication happens here, and a constructed partitioning
// is immutable.
package partition

import (
	apperrors "github.com/agbru/bspnum/internal/errors"
)

// Block equally block-distributes G of the D data axes over a G-dimensional
// processor grid. Axis i of the grid partitions data axis axes[i]; the
// remaining data axes pass through unpartitioned.
//
// The per-axis block shape is fixed once at construction:
// ceil(globalShape[d] / grid[i]) on partitioned axes, globalShape[d]
// elsewhere.
type Block struct {
	globalShape []int
	grid        []int
	axes        []int
	blockShape  []int
}

// NewBlock constructs a block partitioning of data with the given global
// shape (length D) over the given processor grid (length G, G <= D),
// partitioning the first G data axes.
func NewBlock(globalShape, grid []int) (*Block, error) {
	axes := make([]int, len(grid))
	for i := range axes {
		axes[i] = i
	}
	return NewBlockOnAxes(globalShape, grid, axes)
}

// NewBlockOnAxes constructs a block partitioning like NewBlock, but
// partitioning the data axes named by axes: grid axis i distributes data
// axis axes[i]. The axis map must be injective.
//
// All configuration errors are reported here, once; the query methods
// perform no further validation.
func NewBlockOnAxes(globalShape, grid, axes []int) (*Block, error) {
	d, g := len(globalShape), len(grid)
	if g > d {
		return nil, apperrors.NewConfigError(
			"partition: grid rank %d exceeds data rank %d", g, d)
	}
	if len(axes) != g {
		return nil, apperrors.NewConfigError(
			"partition: axis map has %d entries for a rank-%d grid", len(axes), g)
	}
	for _, n := range globalShape {
		if n < 1 {
			return nil, apperrors.NewConfigError(
				"partition: global shape %v has a non-positive extent", globalShape)
		}
	}
	for _, q := range grid {
		if q < 1 {
			return nil, apperrors.NewConfigError(
				"partition: grid %v has a non-positive extent", grid)
		}
	}
	seen := make(map[int]bool, g)
	for i, ax := range axes {
		if ax < 0 || ax >= d {
			return nil, apperrors.NewConfigError(
				"partition: axis map entry %d is outside the data rank %d", ax, d)
		}
		if seen[ax] {
			return nil, apperrors.NewConfigError(
				"partition: axis map %v maps two grid axes to data axis %d", axes, ax)
		}
		seen[ax] = true
		if globalShape[ax] < grid[i] {
			return nil, apperrors.NewConfigError(
				"partition: data extent %d on axis %d is smaller than grid extent %d",
				globalShape[ax], ax, grid[i])
		}
	}

	b := &Block{
		globalShape: append([]int(nil), globalShape...),
		grid:        append([]int(nil), grid...),
		axes:        append([]int(nil), axes...),
		blockShape:  append([]int(nil), globalShape...),
	}
	for i, ax := range b.axes {
		b.blockShape[ax] = (globalShape[ax]-1)/grid[i] + 1
	}
	return b, nil
}

// GlobalShape returns the full data extent per axis.
func (b *Block) GlobalShape() []int { return append([]int(nil), b.globalShape...) }

// Grid returns the processor grid extents.
func (b *Block) Grid() []int { return append([]int(nil), b.grid...) }

// BlockShape returns the per-axis block extent fixed at construction.
func (b *Block) BlockShape() []int { return append([]int(nil), b.blockShape...) }

// Procs returns the total number of processors in the grid.
func (b *Block) Procs() int {
	n := 1
	for _, q := range b.grid {
		n *= q
	}
	return n
}

// LocalSize returns the per-axis extent of the block owned by the processor
// at the given grid coordinate. On a partitioned axis d = axes[i] the extent
// is ceil((globalShape[d] - gridIndex[i]) / grid[i]); unpartitioned axes keep
// their global extent. Summed over a grid axis the extents add up to the
// global extent.
func (b *Block) LocalSize(gridIndex []int) []int {
	size := append([]int(nil), b.globalShape...)
	for i, ax := range b.axes {
		size[ax] = (b.globalShape[ax] + b.grid[i] - gridIndex[i] - 1) / b.grid[i]
	}
	return size
}

// Origin returns the per-axis element offset of the block owned by the
// processor with the given linear id (row-major over the grid).
func (b *Block) Origin(proc int) []int {
	coord := Unflatten(b.grid, proc)
	origin := make([]int, len(b.globalShape))
	for i, ax := range b.axes {
		origin[ax] = b.blockShape[ax] * coord[i]
	}
	return origin
}

// GlobalToLocal converts a global element index to the index within its
// owner's block. Unpartitioned axes pass through unchanged (their block
// extent equals the global extent).
func (b *Block) GlobalToLocal(index []int) []int {
	local := make([]int, len(index))
	for d := range index {
		local[d] = index[d] % b.blockShape[d]
	}
	return local
}

// GridOwner returns the grid coordinate of the processor owning the given
// global element index.
func (b *Block) GridOwner(index []int) []int {
	owner := make([]int, len(b.axes))
	for i, ax := range b.axes {
		owner[i] = index[ax] / b.blockShape[ax]
	}
	return owner
}

// Owner returns the linear processor id owning the given global element
// index.
func (b *Block) Owner(index []int) int {
	return Flatten(b.grid, b.GridOwner(index))
}
