package download

import "github.com/handiism/lutris-art-fetcher/internal/model"

// SelectCandidate returns the first candidate passing the content filters.
//
// SteamGridDB already orders candidates by relevance and score, so there is
// no secondary sort. The filters are independent: a candidate passes iff
// (!excludeNSFW || !c.NSFW) && (!excludeHumor || !c.Humor).
func SelectCandidate(candidates []model.Candidate, excludeNSFW, excludeHumor bool) (model.Candidate, bool) {
	for _, c := range candidates {
		if excludeNSFW && c.NSFW {
			continue
		}
		if excludeHumor && c.Humor {
			continue
		}
		return c, true
	}
	return model.Candidate{}, false
}
