// Package generation orchestrates one text-to-image request/response cycle.
//
// The pipeline runs in strict sequence:
//
//	GenerationRequest -> Validator -> styles.Catalog / Enhance ->
//	scheduler.Run -> OutputStore.Save -> Result
//
// Validation and prompt composition are pure and run fully in parallel
// across requests; the only serialization point is the scheduler's model
// call. Persistence failures are soft: generation cost dwarfs persistence
// cost, so a storage fault never discards a successfully generated image.
package generation
