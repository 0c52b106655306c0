package delivery

import "github.com/BVTRay/vioflow/internal/domain/video"

// Ready derives whether a project may advance from finalized to delivered.
//
// Four checklist flags are required (clean feed, tech review, copyright
// check, metadata), the project must have at least one main-delivery video,
// and every main-delivery video must carry at least one tag. Recomputed on
// every read; never stored.
func Ready(checklist *Checklist, projectVideos []video.Video) bool {
	if checklist == nil {
		return false
	}
	if !checklist.CleanFeed || !checklist.TechReview || !checklist.CopyrightCheck || !checklist.Metadata {
		return false
	}

	mains := MainDeliveryVideos(projectVideos)
	if len(mains) == 0 {
		return false
	}
	for _, v := range mains {
		if !v.HasTags() {
			return false
		}
	}
	return true
}

// MainDeliveryVideos filters the videos flagged as main delivery.
func MainDeliveryVideos(videos []video.Video) []video.Video {
	var mains []video.Video
	for _, v := range videos {
		if v.IsMainDelivery {
			mains = append(mains, v)
		}
	}
	return mains
}
