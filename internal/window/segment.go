package window

// minSegment is the smallest window or validation slice worth evaluating.
const minSegment = 5

// Span is a half-open index range [Start, End) into a feature frame.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bars covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Backtest partitions a frame of length n into overlapping report windows.
// Window length is a tenth of the frame, floored at 50 bars; stride is a
// quarter window, floored at 5. When n is shorter than one window a single
// partial window at the origin is still produced, and any segment shorter
// than 5 bars is skipped.
func Backtest(n int) []Span {
	win := n / 10
	if win < minSegment {
		win = minSegment
	}
	if win < 50 {
		win = 50
	}
	step := win / 4
	if step < minSegment {
		step = minSegment
	}

	limit := n - win + 1
	if limit < 1 {
		limit = 1
	}

	var spans []Span
	for start := 0; start < limit; start += step {
		end := start + win
		if end > n {
			end = n
		}
		if end-start < minSegment {
			continue
		}
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans
}

// Fold is one walk-forward split: training indices [0, TrainEnd) and
// validation indices [TrainEnd, ValEnd). The optimizer scores each fold over
// the expanding prefix [0, ValEnd), not the validation slice alone.
type Fold struct {
	TrainEnd int
	ValEnd   int
}

// Folds builds expanding walk-forward folds over a frame of length n.
// Stepping is (n-minTrain)/nSplits floored at 1; folds whose validation slice
// would be shorter than 5 bars are dropped, and a frame shorter than
// minTrain+5 yields no folds at all.
func Folds(n, nSplits, minTrain, gap int) []Fold {
	if n < minTrain+minSegment {
		return nil
	}
	step := (n - minTrain) / nSplits
	if step < 1 {
		step = 1
	}

	var folds []Fold
	for i := 0; i < nSplits; i++ {
		end := minTrain + i*step
		trEnd := end - gap
		if trEnd < 0 {
			trEnd = 0
		}
		vaEnd := end + step
		if vaEnd > n {
			vaEnd = n
		}
		if vaEnd-trEnd < minSegment {
			continue
		}
		folds = append(folds, Fold{TrainEnd: trEnd, ValEnd: vaEnd})
	}
	return folds
}
