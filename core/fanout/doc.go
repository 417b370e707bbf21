// Package fanout merges N independently produced event streams into one
// ordered output stream without head-of-line blocking.
//
// Each Source pairs a producer key with a Producer, a pull-based iterator
// of text chunks terminated by a completion (with usage accounting) or an
// error. Run fetches from all producers concurrently, writes each event to
// the Sink the moment it arrives, and finishes with a single aggregate
// terminal message once every producer has settled.
//
// # Guarantees
//
//   - Events from one producer are never reordered relative to each other.
//   - Events across producers interleave by arrival time; a slow producer
//     never delays a fast one.
//   - A producer failure is isolated: it becomes an error message on the
//     sink and its siblings keep streaming.
//   - The aggregate terminal message is written exactly once, only after
//     every producer has completed or failed.
//   - Usage is forwarded to the UsageRecorder exactly once per completed
//     producer, even when the session is cancelled afterwards.
//
// # Usage
//
//	fo, err := fanout.New([]fanout.Source{
//		{Key: "logic", Producer: logicProducer},
//		{Key: "creative", Producer: creativeProducer},
//	},
//		fanout.WithFetchTimeout(30*time.Second),
//		fanout.WithRecorder(recorder),
//	)
//	if err != nil {
//		return err
//	}
//	if err := fo.Run(ctx, sink); err != nil {
//		return err
//	}
//
// The fanout loop owns all sink writes; producers never touch the sink.
// Cancelling ctx stops further writes, cancels outstanding fetches
// best-effort, and still forwards usage earned by already-completed
// producers.
package fanout
