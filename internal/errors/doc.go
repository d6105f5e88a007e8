// Package errors provides the structured error type used across rpg-village.
//
// Every error carries a Code, a user-facing Message, an optional Cause and
// free-form Meta. Gameplay rejections (a skill on cooldown, an occupied cell)
// are ordinary errors with a Reason attached under the "reason" meta key, so
// callers can branch on the reason without string matching:
//
//	out, err := engine.Activate(input)
//	if errors.GetReason(err) == errors.ReasonOnCooldown {
//	    // grey out the button
//	}
//
// Infrastructure failures are wrapped with Wrap, which keeps the code of the
// innermost *Error:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save game")
//	}
//
// Errors cross the gRPC boundary with ToGRPCError and FromGRPCError; metadata
// travels as a google.protobuf.Struct status detail.
package errors
