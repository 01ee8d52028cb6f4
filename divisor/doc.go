// Package divisor implements single-dimension seat apportionment with the
// Sainte-Laguë (Webster) divisor method and standard rounding.
//
// Overview:
//
//   - Every item k receives round(v_k / key) seats, where key is the election key
//     and round is round-half-up.
//   - The total seat count only changes when the key crosses a signpost
//     v_k / (s + 1/2), s = 0, 1, 2, ...; the method therefore walks signposts in
//     descending order with a max-heap instead of searching for the key.
//   - All arithmetic is exact (package rational). Ties are reported, never
//     resolved silently.
//
// Ties:
//
//   - When the targetSeats-th and the next signpost differ, the key is their
//     midpoint and the outcome is unique.
//   - When they coincide, the key is that signpost. Items whose quotient ends in
//     exactly 1/2 are marked core.Tied and keep the lower seat count; the seats
//     they compete for are reported in Result.CountOfMissingNumberOfMandates.
//     Callers with more context (the biproportional engine) decide who gets them.
//
// Complexity:
//
//   - Time:  O((S + K) log K) for K items and S seats.
//   - Space: O(K).
//
// Errors:
//
//   - ErrInvalidInput: negative target, negative value, or a positive target
//     over items whose weights are all zero (including an empty list).
package divisor
