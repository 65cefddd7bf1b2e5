package lineart

// Close runs the full C1 closure pipeline against buf: binarization,
// denoise, edgel/normal/curvature estimation, keypoint extraction, spline
// and segment closure, micro-region fill, and a final distance transform
// (§4.1). It returns ok=false if cancel fires at any suspension point, in
// which case the returned mask and distance map must be discarded.
func Close(buf Buffer, p Params, cancel *CancelToken) (mask *Mask, dist *DistanceMap, ok bool) {
	width, height := buf.Bounds()

	working := binarize(buf, p.SelectTransparent, p.StrokeThreshold, cancel)
	if cancel.Cancelled() {
		return nil, nil, false
	}

	denoise(working, cancel)
	if cancel.Cancelled() {
		return nil, nil, false
	}

	original := working.Clone()

	if width > 1 && height > 1 {
		closeStrokes(working, original, p, cancel)
		if cancel.Cancelled() {
			return nil, nil, false
		}
	}

	distField := distanceTransform(width, height, func(x, y int) bool { return working.Stroke(x, y) }, cancel)
	if cancel.Cancelled() {
		return nil, nil, false
	}

	return working, distField, true
}

// closeStrokes runs stages 3-8 of §4.1: edgel graph, normal/curvature
// estimation, thinning, keypoint extraction, spline closure, segment
// closure and micro-region fill. original is the pre-closure snapshot used
// for stage 6's transition count; working accumulates the drawn closures.
func closeStrokes(working, original *Mask, p Params, cancel *CancelToken) {
	width, height := working.Width, working.Height
	stroke := func(x, y int) bool { return working.Stroke(x, y) }

	edgels := BuildEdgelSet(width, height, stroke, cancel)
	if cancel.Cancelled() {
		return
	}

	smoothNormals(edgels, cancel)
	if cancel.Cancelled() {
		return
	}
	computeCurvature(edgels, cancel)
	if cancel.Cancelled() {
		return
	}
	smoothChainCurvature(edgels, cancel)
	if cancel.Cancelled() {
		return
	}

	fields := projectToPixels(edgels, width, height, cancel)
	if cancel.Cancelled() {
		return
	}

	distField := distanceTransform(width, height, func(x, y int) bool { return !working.Stroke(x, y) }, cancel)
	if cancel.Cancelled() {
		return
	}
	radii := strokeRadii(working, distField, cancel)
	if cancel.Cancelled() {
		return
	}

	high := thinCurvature(fields, radii, cancel)
	if cancel.Cancelled() {
		return
	}

	keypoints := extractKeypoints(fields, high, cancel)
	if cancel.Cancelled() {
		return
	}

	var fillSeeds []point

	if p.SplineMaxLength > 0 {
		fillSeeds = append(fillSeeds, runSplineClosure(working, original, fields, keypoints, p, cancel)...)
		if cancel.Cancelled() {
			return
		}
	}

	if p.SegmentMaxLength > 0 {
		fillSeeds = append(fillSeeds, runSegmentClosure(working, original, fields, keypoints, p, cancel)...)
		if cancel.Cancelled() {
			return
		}
	}

	fillMicroRegions(working, fillSeeds, cancel)
}

// runSplineClosure implements §4.1 stage 6: candidate pairing, ordering,
// eligibility by endpoint usage counters, geometric admissibility
// (transition count against original) and the §4.3 admissibility check,
// drawing accepted closures into working.
func runSplineClosure(working, original *Mask, fields *PixelFields, keypoints []Keypoint, p Params, cancel *CancelToken) []point {
	candidates := findSplineCandidates(keypoints, fields, float64(p.SplineMaxLength), cancel)
	if cancel.Cancelled() {
		return nil
	}

	uses := make([]int, len(keypoints))
	var seeds []point

	for _, c := range candidates {
		if cancel.Cancelled() {
			return seeds
		}
		if uses[c.i] >= endPointConnectivity || uses[c.j] >= endPointConnectivity {
			continue
		}
		p1, p2 := keypoints[c.i], keypoints[c.j]
		seq := rasterizeHermite(p1, p2, fields)
		if countTransitions(original, seq) != 2 {
			continue
		}
		admissible, found := checkAdmissibility(working, seq, cancel)
		if !admissible {
			continue
		}
		for _, pt := range seq {
			working.SetStroke(pt.X, pt.Y, true)
		}
		uses[c.i]++
		uses[c.j]++
		seeds = append(seeds, found...)
	}
	return seeds
}

// runSegmentClosure implements §4.1 stage 7: a straight-ray closure from
// every keypoint along its own normal, subject to the same admissibility
// and transition-count rules as spline closure.
func runSegmentClosure(working, original *Mask, fields *PixelFields, keypoints []Keypoint, p Params, cancel *CancelToken) []point {
	var seeds []point
	for _, kp := range keypoints {
		if cancel.Cancelled() {
			return seeds
		}
		seq := rasterizeSegment(kp, fields, working, p.SegmentMaxLength)
		if len(seq) < 2 || countTransitions(original, seq) != 2 {
			continue
		}
		admissible, found := checkAdmissibility(working, seq, cancel)
		if !admissible {
			continue
		}
		for _, pt := range seq {
			working.SetStroke(pt.X, pt.Y, true)
		}
		seeds = append(seeds, found...)
	}
	return seeds
}
