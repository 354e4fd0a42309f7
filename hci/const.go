package hci

// HCI Packet type of events in H4 framing.
const pktTypeEvent uint8 = 0x04

// Event codes
const (
	leMetaEventCode            = 0x3E // LE Meta Event [Vol 2, Part E, 7.7.65].
	leAdvertisingReportSubCode = 0x02 // LE Advertising Report [Vol 2, Part E, 7.7.65.2].
)

// Event Types [Vol 6 Part B, 2.3 Advertising PDU, 4.4.2].
const (
	AdvInd        = 0x00 // Connectable undirected advertising (ADV_IND).
	AdvDirectInd  = 0x01 // Connectable directed advertising (ADV_DIRECT_IND).
	AdvScanInd    = 0x02 // Scannable undirected advertising (ADV_SCAN_IND).
	AdvNonconnInd = 0x03 // Non connectable undirected advertising (ADV_NONCONN_IND).
	ScanRsp       = 0x04 // Scan Response (SCAN_RSP).
)

// RSSINotAvailable is reported by controllers that can't measure the signal.
const RSSINotAvailable = 127
