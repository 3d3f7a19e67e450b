package grid

// GetGridCoords maps a row-major cell index to its column and row.
func GetGridCoords(index, cols int) (x, y int) {
	if cols <= 0 {
		return 0, 0
	}
	return index % cols, index / cols
}

// GetIndex is the inverse of GetGridCoords.
func GetIndex(x, y, cols int) int {
	return y*cols + x
}
