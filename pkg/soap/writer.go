package soap

import "fmt"

// ContentType is the media type of every protocol response.
const ContentType = "application/soap+xml"

const responseSkeleton = `<?xml version="1.0" encoding="UTF-8"?>
<soap:Envelope xmlns:soap="%s"
               xmlns:tds="%s"
               xmlns:trt="%s"
               xmlns:tptz="%s"
               xmlns:tt="%s">
    <soap:Body>%s
    </soap:Body>
</soap:Envelope>`

const faultSkeleton = `<?xml version="1.0" encoding="UTF-8"?>
<soap:Envelope xmlns:soap="%s">
    <soap:Body>
        <soap:Fault>
            <soap:Code>
                <soap:Value>soap:%s</soap:Value>
            </soap:Code>
            <soap:Reason>
                <soap:Text xml:lang="en">%s</soap:Text>
            </soap:Reason>
        </soap:Fault>
    </soap:Body>
</soap:Envelope>`

// WriteResponse wraps a handler's body fragment into a success
// envelope. The fragment is inserted verbatim; all service namespace
// prefixes it may use are declared on the envelope.
func WriteResponse(body string) []byte {
	return []byte(fmt.Sprintf(responseSkeleton,
		NsSOAPEnv, NsDevice, NsMedia, NsPTZ, NsSchema, body))
}

// WriteFault produces a SOAP 1.2 fault envelope with the fixed
// two-level Code/Reason structure.
func WriteFault(code, reason string) []byte {
	return []byte(fmt.Sprintf(faultSkeleton, NsSOAPEnv, code, reason))
}
