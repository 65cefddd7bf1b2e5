package lineart

// binarize extracts an 8-bit stroke-intensity plane from buf (alpha if
// selectTransparent and the buffer has alpha, else inverted luminance) and
// thresholds it into a Mask (§4.1 stage 1).
func binarize(buf Buffer, selectTransparent bool, threshold float64, cancel *CancelToken) *Mask {
	w, h := buf.Bounds()
	mask := NewMask(w, h)

	var plane []uint8
	useAlpha := selectTransparent && buf.HasAlpha()
	if useAlpha {
		plane = buf.Read(FormatAlpha)
	} else {
		plane = buf.Read(FormatLuma)
	}

	cutoff := 255.0 * (1.0 - threshold)

	if useAlpha {
		// Alpha is already "stroke intensity": opaque means present.
		for y := 0; y < h; y++ {
			if cancel.Cancelled() {
				return mask
			}
			row := y * w
			for x := 0; x < w; x++ {
				if float64(plane[row+x]) > cutoff {
					mask.SetStroke(x, y, true)
				}
			}
		}
		return mask
	}

	// Luminance: invert against the plane's own maximum so light
	// backgrounds with dark strokes read as high "stroke intensity".
	var max uint8
	for _, v := range plane {
		if v > max {
			max = v
		}
	}
	for y := 0; y < h; y++ {
		if cancel.Cancelled() {
			return mask
		}
		row := y * w
		for x := 0; x < w; x++ {
			intensity := float64(max) - float64(plane[row+x])
			if intensity > cutoff {
				mask.SetStroke(x, y, true)
			}
		}
	}
	return mask
}
