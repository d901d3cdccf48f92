package service

import (
	"fmt"

	"github.com/beevik/etree"
)

func (r *Registry) getDeviceInformation(*etree.Element) (string, error) {
	d := r.cfg.Device
	return fmt.Sprintf(`
        <tds:GetDeviceInformationResponse>
            <tds:Manufacturer>%s</tds:Manufacturer>
            <tds:Model>%s</tds:Model>
            <tds:FirmwareVersion>%s</tds:FirmwareVersion>
            <tds:SerialNumber>%s</tds:SerialNumber>
            <tds:HardwareId>%s</tds:HardwareId>
        </tds:GetDeviceInformationResponse>`,
		d.Manufacturer, d.Model, d.FirmwareVersion, d.SerialNumber, d.HardwareID), nil
}

func (r *Registry) getCapabilities(*etree.Element) (string, error) {
	return fmt.Sprintf(`
        <tds:GetCapabilitiesResponse>
            <tds:Capabilities>
                <tt:Device>
                    <tt:XAddr>%s</tt:XAddr>
                    <tt:Network>
                        <tt:IPFilter>false</tt:IPFilter>
                        <tt:ZeroConfiguration>false</tt:ZeroConfiguration>
                        <tt:IPVersion6>false</tt:IPVersion6>
                        <tt:DynDNS>false</tt:DynDNS>
                    </tt:Network>
                    <tt:System>
                        <tt:DiscoveryResolve>false</tt:DiscoveryResolve>
                        <tt:DiscoveryBye>false</tt:DiscoveryBye>
                        <tt:RemoteDiscovery>false</tt:RemoteDiscovery>
                        <tt:SystemBackup>false</tt:SystemBackup>
                        <tt:SystemLogging>false</tt:SystemLogging>
                        <tt:FirmwareUpgrade>false</tt:FirmwareUpgrade>
                    </tt:System>
                    <tt:IO>
                        <tt:InputConnectors>0</tt:InputConnectors>
                        <tt:RelayOutputs>0</tt:RelayOutputs>
                    </tt:IO>
                    <tt:Security>
                        <tt:TLS1.1>false</tt:TLS1.1>
                        <tt:TLS1.2>true</tt:TLS1.2>
                        <tt:OnboardKeyGeneration>false</tt:OnboardKeyGeneration>
                        <tt:AccessPolicyConfig>false</tt:AccessPolicyConfig>
                        <tt:X.509Token>false</tt:X.509Token>
                        <tt:SAMLToken>false</tt:SAMLToken>
                        <tt:KerberosToken>false</tt:KerberosToken>
                        <tt:RELToken>false</tt:RELToken>
                    </tt:Security>
                </tt:Device>
                <tt:Media>
                    <tt:XAddr>%s</tt:XAddr>
                    <tt:StreamingCapabilities>
                        <tt:RTPMulticast>false</tt:RTPMulticast>
                        <tt:RTP_TCP>true</tt:RTP_TCP>
                        <tt:RTP_RTSP_TCP>true</tt:RTP_RTSP_TCP>
                    </tt:StreamingCapabilities>
                </tt:Media>
                <tt:PTZ>
                    <tt:XAddr>%s</tt:XAddr>
                </tt:PTZ>
            </tds:Capabilities>
        </tds:GetCapabilitiesResponse>`,
		r.xaddr(Device), r.xaddr(Media), r.xaddr(PTZ)), nil
}

func (r *Registry) getServices(*etree.Element) (string, error) {
	var out string
	for _, svc := range []Service{Device, Media, PTZ} {
		out += fmt.Sprintf(`
            <tds:Service>
                <tds:Namespace>%s</tds:Namespace>
                <tds:XAddr>%s</tds:XAddr>
                <tds:Version>
                    <tt:Major>2</tt:Major>
                    <tt:Minor>5</tt:Minor>
                </tds:Version>
            </tds:Service>`, svc.Namespace(), r.xaddr(svc))
	}
	return "\n        <tds:GetServicesResponse>" + out + "\n        </tds:GetServicesResponse>", nil
}

func (r *Registry) getSystemDateAndTime(*etree.Element) (string, error) {
	now := r.now().UTC()
	return fmt.Sprintf(`
        <tds:GetSystemDateAndTimeResponse>
            <tds:SystemDateAndTime>
                <tt:DateTimeType>NTP</tt:DateTimeType>
                <tt:DaylightSavings>false</tt:DaylightSavings>
                <tt:TimeZone>
                    <tt:TZ>UTC</tt:TZ>
                </tt:TimeZone>
                <tt:UTCDateTime>
                    <tt:Time>
                        <tt:Hour>%d</tt:Hour>
                        <tt:Minute>%d</tt:Minute>
                        <tt:Second>%d</tt:Second>
                    </tt:Time>
                    <tt:Date>
                        <tt:Year>%d</tt:Year>
                        <tt:Month>%d</tt:Month>
                        <tt:Day>%d</tt:Day>
                    </tt:Date>
                </tt:UTCDateTime>
            </tds:SystemDateAndTime>
        </tds:GetSystemDateAndTimeResponse>`,
		now.Hour(), now.Minute(), now.Second(),
		now.Year(), int(now.Month()), now.Day()), nil
}
