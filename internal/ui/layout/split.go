package layout

// SplitHorizontal cuts area into an upper band of upperHeight rows and the
// remaining lower part. The upper band is clamped to the area height.
func SplitHorizontal(area Rectangle, upperHeight int) (upper, lower Rectangle) {
	height := min(max(upperHeight, 0), area.Dy())
	upper = Rectangle{
		Min: area.Min,
		Max: Pos(area.Max.X, area.Min.Y+height),
	}
	lower = Rectangle{
		Min: Pos(area.Min.X, area.Min.Y+height),
		Max: area.Max,
	}
	return upper, lower
}
