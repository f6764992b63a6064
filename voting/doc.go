// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements the event store, membership ledger, ballot engine
and tally engine on top of a SQL store.

# Lifecycle

A voter moves through three states per event:

	Absent  --Join-->  Joined (already_voted = false)  --CastVote-->  Voted

Voted is terminal. Joining again while Joined is a no-op that reports
AlreadyJoined; joining or casting while Voted returns ErrAlreadyVoted.

# Exactly-once ballots

CastVote claims the vote row with a conditional update

	UPDATE vote SET already_voted = true WHERE id = $1 AND already_voted = false

and writes selections in the same transaction. Of any number of concurrent
casts for one voter, only the transaction that flips the flag commits
selections; the rest see zero affected rows and return ErrAlreadyVoted.

# Errors

Operations return errors wrapping one of the package sentinels (ErrNotFound,
ErrForbidden, ErrEventClosed, ...). Match them with errors.Is. Any other
error is a store failure.

# Listing

ListEventsForCreator and ListVotesForVoter return ErrNotFound when there is
nothing to list.
*/
package voting
