package service

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/jesperperl/onvif-test-run/pkg/soap"
)

func (r *Registry) getProfiles(*etree.Element) (string, error) {
	var sb strings.Builder
	for _, p := range r.cfg.Media.Profiles {
		v := p.Video
		fmt.Fprintf(&sb, `
            <trt:Profiles token="%s" fixed="true">
                <tt:Name>%s</tt:Name>
                <tt:VideoSourceConfiguration token="VideoSource_1">
                    <tt:Name>Primary Video Source</tt:Name>
                    <tt:UseCount>1</tt:UseCount>
                    <tt:SourceToken>VideoSource_1</tt:SourceToken>
                    <tt:Bounds x="0" y="0" width="%d" height="%d"/>
                </tt:VideoSourceConfiguration>
                <tt:VideoEncoderConfiguration token="VideoEncoder_%s">
                    <tt:Name>%s Video Encoder</tt:Name>
                    <tt:UseCount>1</tt:UseCount>
                    <tt:Encoding>%s</tt:Encoding>
                    <tt:Resolution>
                        <tt:Width>%d</tt:Width>
                        <tt:Height>%d</tt:Height>
                    </tt:Resolution>
                    <tt:Quality>5</tt:Quality>
                    <tt:RateControl>
                        <tt:FrameRateLimit>%d</tt:FrameRateLimit>
                        <tt:EncodingInterval>1</tt:EncodingInterval>
                        <tt:BitrateLimit>%d</tt:BitrateLimit>
                    </tt:RateControl>
                </tt:VideoEncoderConfiguration>`,
			p.Token, p.Name, v.Width, v.Height, p.Token, p.Name,
			v.Encoding, v.Width, v.Height, v.Framerate, v.Bitrate)

		if a := p.Audio; a != nil {
			fmt.Fprintf(&sb, `
                <tt:AudioEncoderConfiguration token="AudioEncoder_%s">
                    <tt:Name>%s Audio Encoder</tt:Name>
                    <tt:UseCount>1</tt:UseCount>
                    <tt:Encoding>%s</tt:Encoding>
                    <tt:Bitrate>%d</tt:Bitrate>
                    <tt:SampleRate>%d</tt:SampleRate>
                </tt:AudioEncoderConfiguration>`,
				p.Token, p.Name, a.Encoding, a.Bitrate, a.SampleRate)
		}

		sb.WriteString("\n            </trt:Profiles>")
	}

	return "\n        <trt:GetProfilesResponse>" + sb.String() + "\n        </trt:GetProfilesResponse>", nil
}

// getStreamURI reads the trt:ProfileToken parameter from the request
// element, falling back to the first configured profile when absent or
// unrecognized.
func (r *Registry) getStreamURI(param *etree.Element) (string, error) {
	token := ""
	if param != nil {
		if e := soap.FindElement(param, soap.NsMedia, "ProfileToken"); e != nil {
			token = strings.TrimSpace(e.Text())
		}
	}
	if !r.hasProfile(token) {
		token = r.cfg.Media.Profiles[0].Token
	}

	uri := fmt.Sprintf("%s/%s", r.cfg.Media.RTSPBase, token)
	return fmt.Sprintf(`
        <trt:GetStreamUriResponse>
            <trt:MediaUri>
                <tt:Uri>%s</tt:Uri>
                <tt:InvalidAfterConnect>false</tt:InvalidAfterConnect>
                <tt:InvalidAfterReboot>false</tt:InvalidAfterReboot>
                <tt:Timeout>PT30S</tt:Timeout>
            </trt:MediaUri>
        </trt:GetStreamUriResponse>`, uri), nil
}

func (r *Registry) getVideoSources(*etree.Element) (string, error) {
	v := r.cfg.Media.Profiles[0].Video
	return fmt.Sprintf(`
        <trt:GetVideoSourcesResponse>
            <trt:VideoSources token="VideoSource_1">
                <tt:Framerate>%d</tt:Framerate>
                <tt:Resolution>
                    <tt:Width>%d</tt:Width>
                    <tt:Height>%d</tt:Height>
                </tt:Resolution>
            </trt:VideoSources>
        </trt:GetVideoSourcesResponse>`, v.Framerate, v.Width, v.Height), nil
}

func (r *Registry) hasProfile(token string) bool {
	if token == "" {
		return false
	}
	for _, p := range r.cfg.Media.Profiles {
		if p.Token == token {
			return true
		}
	}
	return false
}
