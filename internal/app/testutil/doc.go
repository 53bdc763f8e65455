// Package testutil provides shared test doubles and fixtures.
//
// MockTranscriber is a testify mock of api.Transcriber with call tracking.
// GatedTranscriber parks every call until the test answers it, which makes
// in-flight and superseded requests deterministic:
//
//	gate := testutil.NewGatedTranscriber()
//	go ctrl.Submit(ctx, src, "sk-test")
//	call := gate.Next(t)
//	call.Respond(testutil.ThreeSegmentResult(), nil)
//
// NewObservedLogger returns a zap logger whose entries can be asserted on.
package testutil
