package onboarding

import (
	"slices"

	"github.com/AyaBm214/PremiumConnect/internal/model"
	"github.com/AyaBm214/PremiumConnect/internal/validation"
)

// MediaField names a file-bearing field of the document as "<step>.<field>".
type MediaField string

const (
	MediaCITQFile                MediaField = "info.citqFile"
	MediaReservationsFile        MediaField = "info.reservationsFile"
	MediaPhotos                  MediaField = "photos.items"
	MediaWifiRouterPhoto         MediaField = "guide.wifiRouterPhoto"
	MediaWifiSpeedTestScreenshot MediaField = "guide.wifiSpeedTestScreenshot"
	MediaTourVideo               MediaField = "guide.tourVideo"
	MediaFirstAidKitPhoto        MediaField = "guide.firstAidKitPhoto"
	MediaLockVideo               MediaField = "guide.lockVideoUrl"
	MediaLockPhoto               MediaField = "guide.lockPhoto"
	MediaKitchenPhotos           MediaField = "guide.kitchenPhotos"
	MediaACVideo                 MediaField = "guide.acVideoUrl"
	MediaExtrasPhotos            MediaField = "guide.extrasPhotos"
)

// Blob sub-paths under a property id.
const (
	PurposeDocuments = "documents"
	PurposePhotos    = "photos"
	PurposeGuide     = "guide"
)

type mediaSpec struct {
	step     Step
	name     string
	purpose  string
	kind     validation.FileKind
	multiple bool
	zoned    bool
	// attach must copy the slice it changes; the previous document may
	// still be referenced by an in-flight write.
	attach func(d *model.PropertyData, zone model.ZoneRef, urls []string)
}

var mediaOrder = []MediaField{
	MediaCITQFile,
	MediaReservationsFile,
	MediaPhotos,
	MediaWifiRouterPhoto,
	MediaWifiSpeedTestScreenshot,
	MediaTourVideo,
	MediaFirstAidKitPhoto,
	MediaLockVideo,
	MediaLockPhoto,
	MediaKitchenPhotos,
	MediaACVideo,
	MediaExtrasPhotos,
}

var mediaSpecs = map[MediaField]mediaSpec{
	MediaCITQFile:         infoDocument("citqFile", func(i *model.Info, url string) { i.CITQFile = &url }),
	MediaReservationsFile: infoDocument("reservationsFile", func(i *model.Info, url string) { i.ReservationsFile = &url }),
	MediaPhotos: {
		step:     StepPhotos,
		name:     "photo",
		purpose:  PurposePhotos,
		kind:     validation.FileKindImage,
		multiple: true,
		zoned:    true,
		attach: func(d *model.PropertyData, zone model.ZoneRef, urls []string) {
			p := model.Photos{}
			if d.Photos != nil {
				p = *d.Photos
			}
			p.Items = slices.Clone(p.Items)
			for _, u := range urls {
				p.Items = append(p.Items, model.Photo{Zone: zone, URL: u})
			}
			d.Photos = &p
		},
	},
	MediaWifiRouterPhoto:         guideSingle("wifiRouterPhoto", validation.FileKindImage, func(g *model.Guide, url string) { g.WifiRouterPhoto = &url }),
	MediaWifiSpeedTestScreenshot: guideSingle("wifiSpeedTestScreenshot", validation.FileKindImage, func(g *model.Guide, url string) { g.WifiSpeedTestScreenshot = &url }),
	MediaTourVideo:               guideSingle("tourVideo", validation.FileKindVideo, func(g *model.Guide, url string) { g.TourVideo = &url }),
	MediaFirstAidKitPhoto:        guideSingle("firstAidKitPhoto", validation.FileKindImage, func(g *model.Guide, url string) { g.FirstAidKitPhoto = &url }),
	MediaLockVideo:               guideSingle("lockVideoUrl", validation.FileKindVideo, func(g *model.Guide, url string) { g.LockVideoURL = &url }),
	MediaLockPhoto:               guideSingle("lockPhoto", validation.FileKindImage, func(g *model.Guide, url string) { g.LockPhoto = &url }),
	MediaKitchenPhotos: guideMulti("kitchenPhotos", func(g *model.Guide, urls []string) {
		g.KitchenPhotos = append(slices.Clone(g.KitchenPhotos), urls...)
	}),
	MediaACVideo: guideSingle("acVideoUrl", validation.FileKindVideo, func(g *model.Guide, url string) { g.ACVideoURL = &url }),
	MediaExtrasPhotos: guideMulti("extrasPhotos", func(g *model.Guide, urls []string) {
		g.ExtrasPhotos = append(slices.Clone(g.ExtrasPhotos), urls...)
	}),
}

func infoDocument(name string, set func(*model.Info, string)) mediaSpec {
	return mediaSpec{
		step:    StepInfo,
		name:    name,
		purpose: PurposeDocuments,
		kind:    validation.FileKindDocument,
		attach: func(d *model.PropertyData, _ model.ZoneRef, urls []string) {
			info := model.Info{}
			if d.Info != nil {
				info = *d.Info
			}
			set(&info, urls[0])
			d.Info = &info
		},
	}
}

func guideSingle(name string, kind validation.FileKind, set func(*model.Guide, string)) mediaSpec {
	return mediaSpec{
		step:    StepGuide,
		name:    name,
		purpose: PurposeGuide,
		kind:    kind,
		attach: func(d *model.PropertyData, _ model.ZoneRef, urls []string) {
			g := model.Guide{}
			if d.Guide != nil {
				g = *d.Guide
			}
			set(&g, urls[0])
			d.Guide = &g
		},
	}
}

func guideMulti(name string, add func(*model.Guide, []string)) mediaSpec {
	return mediaSpec{
		step:     StepGuide,
		name:     name,
		purpose:  PurposeGuide,
		kind:     validation.FileKindImage,
		multiple: true,
		attach: func(d *model.PropertyData, _ model.ZoneRef, urls []string) {
			g := model.Guide{}
			if d.Guide != nil {
				g = *d.Guide
			}
			add(&g, urls)
			d.Guide = &g
		},
	}
}

func (f MediaField) spec() (mediaSpec, error) {
	s, ok := mediaSpecs[f]
	if !ok {
		return mediaSpec{}, ErrUnknownMediaField
	}
	return s, nil
}

// Kind is the kind of file the field accepts.
func (f MediaField) Kind() (validation.FileKind, error) {
	s, err := f.spec()
	if err != nil {
		return "", err
	}
	return s.kind, nil
}

func mediaFieldsFor(step Step) []MediaField {
	var out []MediaField
	for _, f := range mediaOrder {
		if mediaSpecs[f].step == step {
			out = append(out, f)
		}
	}
	return out
}
