package window

import "testing"

func TestFolds_BoundaryExample(t *testing.T) {
	// n=1000, 5 splits, min_train=200 -> step=160.
	folds := Folds(1000, 5, 200, 0)
	if len(folds) != 5 {
		t.Fatalf("fold count = %d, want 5", len(folds))
	}

	if folds[0].TrainEnd != 200 || folds[0].ValEnd != 360 {
		t.Errorf("fold 0 = %+v, want {TrainEnd:200 ValEnd:360}", folds[0])
	}
	if folds[4].TrainEnd != 840 || folds[4].ValEnd != 1000 {
		t.Errorf("fold 4 = %+v, want {TrainEnd:840 ValEnd:1000}", folds[4])
	}

	for i, fold := range folds {
		if fold.ValEnd-fold.TrainEnd < 5 {
			t.Errorf("fold %d validation slice too short: %+v", i, fold)
		}
		if i > 0 && fold.TrainEnd <= folds[i-1].TrainEnd {
			t.Errorf("folds must expand: fold %d = %+v", i, fold)
		}
	}
}

func TestFolds_TooShort(t *testing.T) {
	if folds := Folds(204, 5, 200, 0); folds != nil {
		t.Errorf("expected no folds for n=204 min_train=200, got %v", folds)
	}
	if folds := Folds(0, 5, 200, 0); folds != nil {
		t.Errorf("expected no folds for empty frame, got %v", folds)
	}
}

func TestFolds_Gap(t *testing.T) {
	folds := Folds(1000, 5, 200, 10)
	if len(folds) == 0 {
		t.Fatal("expected folds with gap")
	}
	if folds[0].TrainEnd != 190 || folds[0].ValEnd != 360 {
		t.Errorf("fold 0 with gap=10 = %+v, want {TrainEnd:190 ValEnd:360}", folds[0])
	}
}

func TestBacktest_FullWindows(t *testing.T) {
	// n=1000 -> window=100, step=25.
	spans := Backtest(1000)
	if len(spans) == 0 {
		t.Fatal("expected spans for n=1000")
	}
	if spans[0].Start != 0 || spans[0].End != 100 {
		t.Errorf("first span = %+v, want {0 100}", spans[0])
	}
	for i, span := range spans {
		if span.Len() != 100 {
			t.Errorf("span %d has length %d, want 100", i, span.Len())
		}
		if i > 0 && span.Start-spans[i-1].Start != 25 {
			t.Errorf("span %d stride = %d, want 25", i, span.Start-spans[i-1].Start)
		}
	}
	last := spans[len(spans)-1]
	if last.End > 1000 {
		t.Errorf("last span overruns frame: %+v", last)
	}
	if last.Start+25 <= 1000-100 {
		t.Errorf("windows stop too early: last span %+v", last)
	}
}

func TestBacktest_MinimumWindowFloor(t *testing.T) {
	// n=400 -> n/10=40 floored to 50.
	spans := Backtest(400)
	if len(spans) == 0 {
		t.Fatal("expected spans for n=400")
	}
	if spans[0].Len() != 50 {
		t.Errorf("window length = %d, want floor of 50", spans[0].Len())
	}
}

func TestBacktest_PartialFrame(t *testing.T) {
	// Shorter than one window: a single partial segment at the origin.
	spans := Backtest(30)
	if len(spans) != 1 {
		t.Fatalf("span count = %d, want 1", len(spans))
	}
	if spans[0].Start != 0 || spans[0].End != 30 {
		t.Errorf("partial span = %+v, want {0 30}", spans[0])
	}

	// Fewer than 5 bars: nothing to evaluate.
	if spans := Backtest(4); spans != nil {
		t.Errorf("expected no spans for n=4, got %v", spans)
	}
}
