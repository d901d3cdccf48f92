package service

import (
	"github.com/beevik/etree"

	"github.com/jesperperl/onvif-test-run/pkg/wsse"
)

func (r *Registry) getPTZConfigurations(*etree.Element) (string, error) {
	return `
        <tptz:GetConfigurationsResponse>
            <tptz:PTZConfiguration token="PTZ_1">
                <tt:Name>Primary PTZ Configuration</tt:Name>
                <tt:UseCount>1</tt:UseCount>
                <tt:NodeToken>PTZ_Node_1</tt:NodeToken>
                <tt:DefaultAbsolutePantTiltPositionSpace>http://www.onvif.org/ver10/tptz/PanTiltSpaces/PositionGenericSpace</tt:DefaultAbsolutePantTiltPositionSpace>
                <tt:DefaultAbsoluteZoomPositionSpace>http://www.onvif.org/ver10/tptz/ZoomSpaces/PositionGenericSpace</tt:DefaultAbsoluteZoomPositionSpace>
                <tt:DefaultRelativePanTiltTranslationSpace>http://www.onvif.org/ver10/tptz/PanTiltSpaces/TranslationGenericSpace</tt:DefaultRelativePanTiltTranslationSpace>
                <tt:DefaultRelativeZoomTranslationSpace>http://www.onvif.org/ver10/tptz/ZoomSpaces/TranslationGenericSpace</tt:DefaultRelativeZoomTranslationSpace>
                <tt:DefaultContinuousPanTiltVelocitySpace>http://www.onvif.org/ver10/tptz/PanTiltSpaces/VelocityGenericSpace</tt:DefaultContinuousPanTiltVelocitySpace>
                <tt:DefaultContinuousZoomVelocitySpace>http://www.onvif.org/ver10/tptz/ZoomSpaces/VelocityGenericSpace</tt:DefaultContinuousZoomVelocitySpace>
                <tt:DefaultPTZSpeed>
                    <tt:PanTilt x="0.1" y="0.1" space="http://www.onvif.org/ver10/tptz/PanTiltSpaces/GenericSpeedSpace"/>
                    <tt:Zoom x="0.1" space="http://www.onvif.org/ver10/tptz/ZoomSpaces/ZoomGenericSpeedSpace"/>
                </tt:DefaultPTZSpeed>
                <tt:DefaultPTZTimeout>PT5S</tt:DefaultPTZTimeout>
            </tptz:PTZConfiguration>
        </tptz:GetConfigurationsResponse>`, nil
}

func (r *Registry) getPTZNodes(*etree.Element) (string, error) {
	return `
        <tptz:GetNodesResponse>
            <tptz:PTZNode token="PTZ_Node_1" FixedHomePosition="false">
                <tt:Name>Primary PTZ Node</tt:Name>
                <tt:SupportedPTZSpaces>
                    <tt:AbsolutePanTiltPositionSpace>
                        <tt:URI>http://www.onvif.org/ver10/tptz/PanTiltSpaces/PositionGenericSpace</tt:URI>
                        <tt:XRange>
                            <tt:Min>-180</tt:Min>
                            <tt:Max>180</tt:Max>
                        </tt:XRange>
                        <tt:YRange>
                            <tt:Min>-90</tt:Min>
                            <tt:Max>90</tt:Max>
                        </tt:YRange>
                    </tt:AbsolutePanTiltPositionSpace>
                    <tt:AbsoluteZoomPositionSpace>
                        <tt:URI>http://www.onvif.org/ver10/tptz/ZoomSpaces/PositionGenericSpace</tt:URI>
                        <tt:XRange>
                            <tt:Min>0</tt:Min>
                            <tt:Max>1</tt:Max>
                        </tt:XRange>
                    </tt:AbsoluteZoomPositionSpace>
                </tt:SupportedPTZSpaces>
                <tt:MaximumNumberOfPresets>16</tt:MaximumNumberOfPresets>
                <tt:HomeSupported>true</tt:HomeSupported>
            </tptz:PTZNode>
        </tptz:GetNodesResponse>`, nil
}

func (r *Registry) getPTZStatus(*etree.Element) (string, error) {
	return `
        <tptz:GetStatusResponse>
            <tptz:PTZStatus>
                <tt:Position>
                    <tt:PanTilt x="0.0" y="0.0" space="http://www.onvif.org/ver10/tptz/PanTiltSpaces/PositionGenericSpace"/>
                    <tt:Zoom x="0.0" space="http://www.onvif.org/ver10/tptz/ZoomSpaces/PositionGenericSpace"/>
                </tt:Position>
                <tt:MoveStatus>
                    <tt:PanTilt>IDLE</tt:PanTilt>
                    <tt:Zoom>IDLE</tt:Zoom>
                </tt:MoveStatus>
                <tt:UtcTime>` + wsse.Created(r.now()) + `</tt:UtcTime>
            </tptz:PTZStatus>
        </tptz:GetStatusResponse>`, nil
}
